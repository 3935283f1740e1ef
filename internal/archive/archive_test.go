// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zipEntry is one entry written into a test archive, in order.
type zipEntry struct {
	name string
	data []byte
}

func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestOpenRejectsNonZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.cbz")
	require.NoError(t, os.WriteFile(path, []byte("not a zip container"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArchive)
	assert.Contains(t, err.Error(), "broken.cbz")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.cbz"))
	assert.ErrorIs(t, err, ErrInvalidArchive)
}

func TestImageEntriesFilterAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.cbz")
	writeZip(t, path, []zipEntry{
		{name: "pages/", data: nil},
		{name: "pages/p10.jpg", data: []byte("j10")},
		{name: "pages/p2.jpg", data: []byte("j2")},
		{name: "pages/P1.JPG", data: []byte("j1")},
		{name: "ComicInfo.xml", data: []byte("<ComicInfo/>")},
		{name: "notes.txt", data: []byte("ignore")},
		{name: "__MACOSX/pages/p2.jpg", data: []byte("fork")},
		{name: "pages/._p2.jpg", data: []byte("fork")},
		{name: "cover.webp", data: []byte("w")},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	var names []string
	for _, e := range a.ImageEntries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"cover.webp",
		"pages/P1.JPG",
		"pages/p2.jpg",
		"pages/p10.jpg",
	}, names)
}

func TestImageEntriesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.cbz")
	writeZip(t, path, []zipEntry{
		{name: "readme.txt", data: []byte("no pages here")},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.ImageEntries())
}

func TestReadEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.cbz")
	writeZip(t, path, []zipEntry{
		{name: "p1.png", data: []byte("png-bytes")},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	data, err := a.ReadEntry("p1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = a.ReadEntry("absent.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.png")
}

func TestEntrySizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.cbz")
	writeZip(t, path, []zipEntry{
		{name: "p1.png", data: []byte("12345")},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	entries := a.ImageEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].Size)
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name    string
		entries []zipEntry
		wantOK  bool
		want    string // expected Series when ok
	}{
		{
			name: "well-formed at root",
			entries: []zipEntry{
				{name: "ComicInfo.xml", data: []byte(`<?xml version="1.0"?><ComicInfo><Series>Bleach</Series><Number>12</Number></ComicInfo>`)},
				{name: "p1.jpg", data: []byte("x")},
			},
			wantOK: true,
			want:   "Bleach",
		},
		{
			name: "case-insensitive match",
			entries: []zipEntry{
				{name: "comicinfo.XML", data: []byte(`<ComicInfo><Series>Nausicaa</Series></ComicInfo>`)},
			},
			wantOK: true,
			want:   "Nausicaa",
		},
		{
			name: "root preferred over nested",
			entries: []zipEntry{
				{name: "sub/ComicInfo.xml", data: []byte(`<ComicInfo><Series>Nested</Series></ComicInfo>`)},
				{name: "ComicInfo.xml", data: []byte(`<ComicInfo><Series>Root</Series></ComicInfo>`)},
			},
			wantOK: true,
			want:   "Root",
		},
		{
			name: "malformed is ignored",
			entries: []zipEntry{
				{name: "ComicInfo.xml", data: []byte(`<ComicInfo><Series>unterminated`)},
			},
			wantOK: false,
		},
		{
			name: "empty metadata reads as absent",
			entries: []zipEntry{
				{name: "ComicInfo.xml", data: []byte(`<ComicInfo></ComicInfo>`)},
			},
			wantOK: false,
		},
		{
			name: "absent",
			entries: []zipEntry{
				{name: "p1.jpg", data: []byte("x")},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "meta.cbz")
			writeZip(t, path, tt.entries)

			a, err := Open(path)
			require.NoError(t, err)
			defer a.Close()

			ci, ok := a.Info()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, ci.Series)
			}
		})
	}
}

func TestIsArchive(t *testing.T) {
	assert.True(t, IsArchive("chapter.cbz"))
	assert.True(t, IsArchive("Chapter 1.CBZ"))
	assert.False(t, IsArchive("chapter.zip"))
	assert.False(t, IsArchive("chapter.cbr"))
	assert.False(t, IsArchive("cbz"))
}

func TestIsImageEntry(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "p1.jpg", want: true},
		{name: "pages/p1.jpeg", want: true},
		{name: "p1.PNG", want: true},
		{name: "p1.webp", want: true},
		{name: "p1.tiff", want: true},
		{name: "p1.gif", want: true},
		{name: "p1.bmp", want: true},
		{name: "pages/", want: false},
		{name: "notes.txt", want: false},
		{name: "__MACOSX/p1.jpg", want: false},
		{name: "pages/._p1.jpg", want: false},
		{name: "ComicInfo.xml", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsImageEntry(tt.name))
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "Vol 01", Stem("/comics/Vol 01.cbz"))
	assert.Equal(t, "chapter", Stem("chapter.cbz"))
	assert.Equal(t, "noext", Stem("noext"))
}

func TestArchiveStem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "My Comic.cbz")
	writeZip(t, path, []zipEntry{{name: "p1.jpg", data: []byte("x")}})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "My Comic", a.Stem())
	assert.Equal(t, path, a.Path())
}
