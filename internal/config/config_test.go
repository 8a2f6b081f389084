package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, "X-fit Premium Dushanbe", cfg.ClubName)
	assert.Equal(t, "guest_visits.sqlite3", cfg.DBPath)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.SMTPUseTLS)
	assert.Equal(t, "sales@x-fit.tj", cfg.EmailTo)
	assert.Equal(t, "+992 48 8888 555", cfg.ClubPhone)
	assert.Equal(t, "info@x-fit.tj", cfg.ClubEmail)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMultiKeyFallback(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "test-token")
	t.Setenv("SMTP_PASS", "legacy-secret")
	t.Setenv("CONTACT_PHONE", "+992 90 000 00 00")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "legacy-secret", cfg.SMTPPass)
	assert.Equal(t, "+992 90 000 00 00", cfg.ClubPhone)

	// The primary key wins over the fallback.
	t.Setenv("SMTP_PASSWORD", "new-secret")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "new-secret", cfg.SMTPPass)
}

func TestLoadEmailFromDefaultsToSMTPUser(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "test-token")
	t.Setenv("SMTP_USER", "bot@x-fit.tj")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bot@x-fit.tj", cfg.EmailFrom)
}
