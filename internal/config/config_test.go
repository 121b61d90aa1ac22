package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/slotbot_test?sslmode=disable")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Token)
	assert.Equal(t, ":8090", cfg.HTTPAddr)
	assert.Equal(t, "calendars", cfg.CalendarDir)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Zero(t, cfg.GuildID)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/slotbot_test")

	_, err := Load()
	assert.ErrorContains(t, err, "TOKEN")
}

func TestLoadGuildID(t *testing.T) {
	setRequired(t)

	t.Run("valid", func(t *testing.T) {
		t.Setenv("GUILD_ID", "123456789012345678")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, int64(123456789012345678), cfg.GuildID)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("GUILD_ID", "not-a-snowflake")
		_, err := Load()
		assert.ErrorContains(t, err, "GUILD_ID")
	})
}

func TestLoadInvalidDatabaseURL(t *testing.T) {
	t.Setenv("TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "not a url")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}
