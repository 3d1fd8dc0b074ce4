package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tyler180/fbref-scout/internal/config"
	"github.com/tyler180/fbref-scout/internal/session"
	"github.com/tyler180/fbref-scout/internal/store"
)

func TestBuild_LocalDefaults(t *testing.T) {
	dir := t.TempDir()
	d, err := Build(context.Background(), config.Config{
		APIKey:      "sk-test",
		Model:       "gpt-4o-mini",
		SiteBaseURL: "https://fbref.com/",
		HTTPTimeout: time.Second,
		MaxAttempts: 1,
		SessionTTL:  time.Hour,
		ReportDir:   dir,
	})
	require.NoError(t, err)
	require.Equal(t, "https://fbref.com", d.Site.BaseURL())

	_, ok := d.Manager.Store.(*session.MemoryStore)
	require.True(t, ok)
	exp, ok := d.Manager.Exporter.(*store.FileExporter)
	require.True(t, ok)
	require.Equal(t, dir, exp.Dir)
}
