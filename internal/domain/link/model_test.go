package link_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/testutil"
	"github.com/partnerflow/partnerflow/internal/types"
)

func TestNewLink(t *testing.T) {
	ctx := testutil.SetupContext()

	l := link.New(ctx, "ws_1", "https://example.com/pricing", "pflow.to")

	assert.True(t, strings.HasPrefix(l.ID, types.UUID_PREFIX_LINK+"_"))
	assert.NotEmpty(t, l.Key)
	assert.LessOrEqual(t, len(l.Key), 12)
	assert.Equal(t, "https://pflow.to/"+l.Key, l.ShortLink)
	assert.Equal(t, "ws_1", l.WorkspaceID)
	assert.Equal(t, types.StatusActive, l.Status)
	assert.False(t, l.HasProgram())

	l2 := link.New(ctx, "ws_1", "https://example.com/pricing", "pflow.to/")
	assert.NotEqual(t, l.Key, l2.Key)
	assert.Equal(t, "https://pflow.to/"+l2.Key, l2.ShortLink)
}

func TestHasProgram(t *testing.T) {
	l := &link.Link{}
	assert.False(t, l.HasProgram())

	l.ProgramID = "prog_1"
	assert.True(t, l.HasProgram())
}
