// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

type Config struct {
	APIKey     string
	LLMBaseURL string
	Model      string

	SiteBaseURL string
	HTTPTimeout time.Duration
	MaxAttempts int
	RetryBase   time.Duration
	RetryMax    time.Duration

	// SessionTable selects the DynamoDB store; empty keeps sessions in memory.
	SessionTable string
	SessionTTL   time.Duration

	// ReportBucket selects S3 export; otherwise reports go to ReportDir.
	ReportBucket string
	ReportPrefix string
	ReportDir    string

	LogLevel string
	Debug    bool
}

// Load fails only when the API key is absent.
func Load() (Config, error) {
	c := Config{
		APIKey:       envStr("OPENAI_API_KEY", ""),
		LLMBaseURL:   envStr("OPENAI_BASE_URL", llm.DefaultBaseURL),
		Model:        envStr("SCOUT_MODEL", llm.DefaultModel),
		SiteBaseURL:  envStr("FBREF_BASE_URL", fbref.BaseURL),
		HTTPTimeout:  time.Duration(envInt("HTTP_TIMEOUT_MS", 30000)) * time.Millisecond,
		MaxAttempts:  envInt("HTTP_MAX_ATTEMPTS", 1),
		RetryBase:    time.Duration(envInt("HTTP_RETRY_BASE_MS", 500)) * time.Millisecond,
		RetryMax:     time.Duration(envInt("HTTP_RETRY_MAX_MS", 8000)) * time.Millisecond,
		SessionTable: envStr("SESSION_TABLE_NAME", ""),
		SessionTTL:   time.Duration(envInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		ReportBucket: envStr("REPORT_BUCKET", ""),
		ReportPrefix: strings.Trim(envStr("REPORT_PREFIX", "reports"), "/"),
		ReportDir:    envStr("REPORT_DIR", "."),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		Debug:        envBool("DEBUG", false),
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.APIKey == "" {
		return c, ErrMissingAPIKey
	}
	return c, nil
}

// FetchOptions configures the site client.
func (c Config) FetchOptions() fbref.Options {
	return fbref.Options{
		BaseURL:     c.SiteBaseURL,
		Timeout:     c.HTTPTimeout,
		MaxAttempts: c.MaxAttempts,
		RetryBase:   c.RetryBase,
		RetryMax:    c.RetryMax,
	}
}

// ------------------ env helpers ------------------

func envStr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
