// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/comicbind/pkg/types"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC()
	r := New("/comics", "/pdfs", "vector", 96)

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, "/comics", r.SourceDir)
	assert.Equal(t, "/pdfs", r.OutputDir)
	assert.Equal(t, "vector", r.Device)
	assert.Equal(t, 96, r.DPI)
	assert.False(t, r.StartedAt.Before(before))
	assert.True(t, r.FinishedAt.IsZero())

	other := New("/comics", "/pdfs", "vector", 96)
	assert.NotEqual(t, r.RunID, other.RunID)
}

func TestAddAccumulates(t *testing.T) {
	r := New("/comics", "/pdfs", "none", 96)

	r.Add(types.ArchiveResult{
		Archive:     "vol1",
		Status:      types.StatusConverted,
		Pages:       24,
		OutputBytes: 1 << 20,
	})
	r.Add(types.ArchiveResult{
		Archive: "vol2",
		Status:  types.StatusSkipped,
		Reason:  "no image entries",
	})
	r.Add(types.ArchiveResult{
		Archive: "vol3",
		Status:  types.StatusFailed,
		Reason:  "not a valid archive",
	})

	assert.Equal(t, 1, r.Converted)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 24, r.Pages)
	assert.Equal(t, int64(1<<20), r.OutputBytes)
	assert.Len(t, r.Archives, 3)
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	r := New("/comics", "/pdfs", "vector", 150)
	r.Add(types.ArchiveResult{
		Archive:     "vol1",
		Path:        "/comics/vol1.cbz",
		Status:      types.StatusConverted,
		Pages:       12,
		OutputPath:  "/pdfs/vol1.pdf",
		OutputBytes: 4096,
	})

	require.NoError(t, Write(path, r))
	assert.False(t, r.FinishedAt.IsZero())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.RunReport
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, r.RunID, got.RunID)
	assert.Equal(t, "/comics", got.SourceDir)
	assert.Equal(t, 150, got.DPI)
	assert.Equal(t, 1, got.Converted)
	require.Len(t, got.Archives, 1)
	assert.Equal(t, "vol1", got.Archives[0].Archive)
	assert.Equal(t, types.StatusConverted, got.Archives[0].Status)
}

func TestWriteKeepsFinishedAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	r := New("/comics", "/pdfs", "none", 96)
	done := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.FinishedAt = done

	require.NoError(t, Write(path, r))
	assert.Equal(t, done, r.FinishedAt)
}

func TestWriteBadPath(t *testing.T) {
	r := New("/comics", "/pdfs", "none", 96)
	err := Write(filepath.Join(t.TempDir(), "missing", "run.yaml"), r)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	r := New("/comics", "/pdfs", "vector", 96)
	r.Converted = 2
	r.Skipped = 1
	r.Pages = 48
	r.OutputBytes = 2 << 20

	var buf bytes.Buffer
	Summarize(&buf, r)

	out := buf.String()
	assert.Contains(t, out, r.RunID)
	assert.Contains(t, out, "2 converted, 1 skipped, 0 failed")
	assert.Contains(t, out, "48 pages")
	assert.Contains(t, out, "2.097MB")
}
