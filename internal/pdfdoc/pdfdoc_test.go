// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jpegPage encodes a small solid-color page image.
func jpegPage(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestWriteAndPageCount(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "chapter.pdf")

	pages := [][]byte{
		jpegPage(t, 100, 150, color.NRGBA{R: 200, A: 255}),
		jpegPage(t, 100, 150, color.NRGBA{G: 200, A: 255}),
		jpegPage(t, 100, 150, color.NRGBA{B: 200, A: 255}),
	}
	require.NoError(t, Write(out, pages, Options{}))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// The temp staging file must be gone after the rename.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "chapter.pdf", entries[0].Name())
}

func TestWriteNoPages(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "empty.pdf"), nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pages")
}

func TestWriteBadPageSpec(t *testing.T) {
	pages := [][]byte{jpegPage(t, 10, 10, color.NRGBA{A: 255})}
	err := Write(filepath.Join(t.TempDir(), "spec.pdf"), pages, Options{PageSpec: "bogus:true"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page spec")
}

func TestWriteReplacesExisting(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chapter.pdf")
	require.NoError(t, os.WriteFile(out, []byte("stale garbage"), 0o644))

	pages := [][]byte{jpegPage(t, 50, 50, color.NRGBA{R: 10, A: 255})}
	require.NoError(t, Write(out, pages, Options{}))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOptimize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "big.pdf")
	pages := [][]byte{
		jpegPage(t, 80, 120, color.NRGBA{R: 1, A: 255}),
		jpegPage(t, 80, 120, color.NRGBA{R: 2, A: 255}),
	}
	require.NoError(t, Write(out, pages, Options{}))

	require.NoError(t, Optimize(out))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "optimize must preserve page structure")
}

func TestSetProperties(t *testing.T) {
	out := filepath.Join(t.TempDir(), "meta.pdf")
	pages := [][]byte{jpegPage(t, 40, 40, color.NRGBA{B: 9, A: 255})}
	require.NoError(t, Write(out, pages, Options{}))

	props := map[string]string{"Title": "Vol 1", "Series": "Test"}
	require.NoError(t, SetProperties(out, props))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSetPropertiesEmptyIsNoop(t *testing.T) {
	// No properties means no file access at all.
	require.NoError(t, SetProperties(filepath.Join(t.TempDir(), "absent.pdf"), nil))
}

func TestPageCountMissingFile(t *testing.T) {
	_, err := PageCount(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}
