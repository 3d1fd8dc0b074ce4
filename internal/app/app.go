// Package app assembles a session.Manager from configuration. Both the CLI and
// the Lambda go through Build.
package app

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tyler180/fbref-scout/internal/config"
	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
	"github.com/tyler180/fbref-scout/internal/scout"
	"github.com/tyler180/fbref-scout/internal/session"
	"github.com/tyler180/fbref-scout/internal/store"
)

type Deps struct {
	Site    *fbref.Client
	LLM     *llm.Client
	Manager *session.Manager
}

// Build wires the site client, the text-generation client, the session store and
// the exporter. AWS config is only loaded when a table or bucket is configured.
func Build(ctx context.Context, cfg config.Config) (*Deps, error) {
	site := fbref.NewClient(cfg.FetchOptions())
	completer := llm.NewClient(cfg.APIKey, cfg.LLMBaseURL, cfg.HTTPTimeout*2).WithModel(cfg.Model)

	m := &session.Manager{
		Fetcher:   site,
		Locator:   site,
		Generator: scout.NewGenerator(completer, cfg.Model),
		Chat:      scout.NewChat(completer, cfg.Model),
		Store:     session.NewMemoryStore(1024, cfg.SessionTTL),
		Exporter:  &store.FileExporter{Dir: cfg.ReportDir},
	}

	if cfg.SessionTable != "" || cfg.ReportBucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		if cfg.SessionTable != "" {
			m.Store = &store.SessionTable{
				DDB:   dynamodb.NewFromConfig(awsCfg),
				Table: cfg.SessionTable,
				TTL:   cfg.SessionTTL,
			}
		}
		if cfg.ReportBucket != "" {
			m.Exporter = &store.S3Exporter{
				S3:     s3.NewFromConfig(awsCfg),
				Bucket: cfg.ReportBucket,
				Prefix: cfg.ReportPrefix,
			}
		}
	}

	slog.Debug("app: built",
		"model", cfg.Model,
		"site", site.BaseURL(),
		"session_table", cfg.SessionTable,
		"report_bucket", cfg.ReportBucket,
		"max_attempts", cfg.MaxAttempts)

	return &Deps{Site: site, LLM: completer, Manager: m}, nil
}
