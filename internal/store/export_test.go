package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/fbref-scout/internal/scout"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Exporter(t *testing.T) {
	fs := &fakeS3{}
	e := &S3Exporter{S3: fs, Bucket: "reports", Prefix: "/scout/"}

	loc, err := e.Export(context.Background(), scout.Report{Player: "Raphinha", Markdown: "## Raphinha Scouting Report"})
	require.NoError(t, err)
	require.Equal(t, "s3://reports/scout/Raphinha_report.md", loc)
	require.Equal(t, "scout/Raphinha_report.md", aws.ToString(fs.in.Key))
	require.Equal(t, "text/markdown; charset=utf-8", aws.ToString(fs.in.ContentType))
	require.Equal(t, "## Raphinha Scouting Report", fs.body)

	fs.err = errors.New("access denied")
	_, err = e.Export(context.Background(), scout.Report{Player: "x"})
	require.ErrorContains(t, err, "access denied")
}

func TestFileExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := &FileExporter{Dir: dir}

	p, err := e.Export(context.Background(), scout.Report{Player: "Kylian Mbappé", Markdown: "report"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Kylian Mbappé_report.md"), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "report", string(b))
}
