package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partnerflow/partnerflow/internal/types"
)

const requiredSections = `
deployment:
  mode: local
server:
  address: ":8080"
logging:
  level: debug
postgres:
  host: localhost
  port: 5432
  user: partnerflow
  password: partnerflow
  dbname: partnerflow
  sslmode: disable
clickhouse:
  address: localhost:9000
  username: default
  database: partnerflow
redis:
  url: localhost:6379
`

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func TestNewConfigAppliesDefaults(t *testing.T) {
	writeConfig(t, requiredSections)

	cfg, err := NewConfig()
	require.NoError(t, err)

	// The dedup claim must always carry an expiry, even when the operator
	// omits the billing section entirely
	assert.Equal(t, 168*time.Hour, cfg.Billing.DedupTTL)
	assert.Equal(t, "webhooks", cfg.Webhook.Topic)
	assert.Equal(t, types.MemoryPubSub, cfg.Webhook.PubSub)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "partners@partnerflow.io", cfg.Notifications.FromAddress)
}

func TestNewConfigFileOverridesDefaults(t *testing.T) {
	writeConfig(t, requiredSections+`
billing:
  dedup_ttl: 24h
webhook:
  topic: workspace_webhooks
cache:
  enabled: false
`)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Billing.DedupTTL)
	assert.Equal(t, "workspace_webhooks", cfg.Webhook.Topic)
	assert.False(t, cfg.Cache.Enabled)
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, types.ModeLocal, cfg.Deployment.Mode)
	assert.Equal(t, 168*time.Hour, cfg.Billing.DedupTTL)
	assert.Equal(t, "webhooks", cfg.Webhook.Topic)
}
