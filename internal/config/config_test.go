package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "  ")
	_, err := Load()
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	for _, k := range []string{"OPENAI_BASE_URL", "SCOUT_MODEL", "FBREF_BASE_URL", "HTTP_TIMEOUT_MS",
		"HTTP_MAX_ATTEMPTS", "SESSION_TABLE_NAME", "SESSION_TTL_MINUTES", "REPORT_BUCKET", "REPORT_PREFIX",
		"REPORT_DIR", "LOG_LEVEL", "DEBUG"} {
		t.Setenv(k, "")
	}

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-test", c.APIKey)
	require.Equal(t, "https://api.openai.com/v1", c.LLMBaseURL)
	require.Equal(t, "gpt-4o-mini", c.Model)
	require.Equal(t, "https://fbref.com", c.SiteBaseURL)
	require.Equal(t, 30*time.Second, c.HTTPTimeout)
	require.Equal(t, 1, c.MaxAttempts)
	require.Empty(t, c.SessionTable)
	require.Equal(t, time.Hour, c.SessionTTL)
	require.Equal(t, "reports", c.ReportPrefix)
	require.Equal(t, ".", c.ReportDir)
	require.Equal(t, "info", c.LogLevel)
	require.False(t, c.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SCOUT_MODEL", "gpt-4o")
	t.Setenv("HTTP_TIMEOUT_MS", "1500")
	t.Setenv("HTTP_MAX_ATTEMPTS", "0")
	t.Setenv("SESSION_TABLE_NAME", "scout-sessions")
	t.Setenv("SESSION_TTL_MINUTES", "notanumber")
	t.Setenv("REPORT_PREFIX", "/exports/")
	t.Setenv("DEBUG", "yes")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", c.Model)
	require.Equal(t, 1500*time.Millisecond, c.HTTPTimeout)
	require.Equal(t, 1, c.MaxAttempts)
	require.Equal(t, "scout-sessions", c.SessionTable)
	require.Equal(t, time.Hour, c.SessionTTL)
	require.Equal(t, "exports", c.ReportPrefix)
	require.True(t, c.Debug)

	opts := c.FetchOptions()
	require.Equal(t, 1500*time.Millisecond, opts.Timeout)
	require.Equal(t, 1, opts.MaxAttempts)
}
