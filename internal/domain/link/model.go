package link

import (
	"context"
	"fmt"
	"strings"

	"github.com/partnerflow/partnerflow/internal/types"
)

// Link represents a tracked referral link
type Link struct {
	// ID is the unique identifier for the link
	ID string `db:"id" json:"id"`

	// WorkspaceID is the workspace (project) that owns the link
	WorkspaceID string `db:"workspace_id" json:"workspace_id"`

	// Key is the short slug of the link, e.g. the `xYZ12A8Q` in pflow.to/xYZ12A8Q
	Key string `db:"key" json:"key"`

	// URL is the destination the link redirects to
	URL string `db:"url" json:"url"`

	// ShortLink is the fully qualified short URL
	ShortLink string `db:"short_link" json:"short_link"`

	// ProgramID associates the link with a partner program. Empty for links
	// that do not accrue commissions.
	ProgramID string `db:"program_id" json:"program_id,omitempty"`

	// PartnerID is the partner that owns the link inside a program, if any
	PartnerID string `db:"partner_id" json:"partner_id,omitempty"`

	// Aggregate conversion counters
	Clicks     int64 `db:"clicks" json:"clicks"`
	Leads      int64 `db:"leads" json:"leads"`
	Sales      int64 `db:"sales" json:"sales"`
	SaleAmount int64 `db:"sale_amount" json:"sale_amount"`

	// EnvironmentID is the environment identifier for the link
	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

// New creates a link with a generated ID and short key under the given domain
func New(ctx context.Context, workspaceID, url, domain string) *Link {
	key := types.GenerateShortIDWithPrefix("")
	return &Link{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINK),
		WorkspaceID:   workspaceID,
		Key:           key,
		URL:           url,
		ShortLink:     fmt.Sprintf("https://%s/%s", strings.TrimSuffix(domain, "/"), key),
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// HasProgram reports whether sales through this link accrue partner commission
func (l *Link) HasProgram() bool {
	return l.ProgramID != ""
}
