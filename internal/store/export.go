package store

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tyler180/fbref-scout/internal/scout"
	"github.com/tyler180/fbref-scout/internal/session"
)

const markdownContentType = "text/markdown; charset=utf-8"

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter uploads reports as s3://Bucket/Prefix/<player>_report.md.
type S3Exporter struct {
	S3     S3API
	Bucket string
	Prefix string
}

var _ session.Exporter = (*S3Exporter)(nil)

func (e *S3Exporter) Export(ctx context.Context, r scout.Report) (string, error) {
	key := path.Join(strings.Trim(e.Prefix, "/"), r.Filename())
	_, err := e.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.Bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(r.Markdown),
		ContentType: aws.String(markdownContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", e.Bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", e.Bucket, key), nil
}

// FileExporter writes reports into Dir, replacing any earlier export for the player.
type FileExporter struct {
	Dir string
}

var _ session.Exporter = (*FileExporter)(nil)

func (e *FileExporter) Export(_ context.Context, r scout.Report) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	p := filepath.Join(dir, r.Filename())
	if err := os.WriteFile(p, []byte(r.Markdown), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return p, nil
}
