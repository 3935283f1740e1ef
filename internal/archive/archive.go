// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive reads comic-book archives: zip containers of page images,
// optionally carrying ComicInfo.xml metadata. Archives are opened read-only
// and never modified.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/comicbind/internal/natsort"
)

// ErrInvalidArchive marks a file that is not a readable zip container.
var ErrInvalidArchive = errors.New("archive: invalid or corrupted archive")

// imageExts lists the recognized raster page extensions, lowercase.
var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".gif":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// IsArchive reports whether name carries the comic-archive extension.
func IsArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".cbz")
}

// IsImageEntry reports whether an archive entry name qualifies as a page
// image: a recognized raster extension, not a directory entry, and not a
// macOS resource fork (__MACOSX/ trees, dot-underscore AppleDouble files).
func IsImageEntry(name string) bool {
	if strings.HasSuffix(name, "/") || isResourceFork(name) {
		return false
	}
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// isResourceFork reports whether an entry belongs to a macOS resource fork.
func isResourceFork(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == "__MACOSX" {
			return true
		}
	}
	return strings.HasPrefix(entryBase(name), "._")
}

// entryBase returns the final path segment of a zip entry name. Zip entries
// always use forward slashes regardless of platform.
func entryBase(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Stem returns the base name of path without its extension, used to name the
// output document.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Entry describes one qualifying image entry inside an archive.
type Entry struct {
	// Name is the full entry path inside the zip.
	Name string

	// Size is the uncompressed entry size.
	Size int64
}

// Archive provides access to one open comic archive.
type Archive struct {
	path    string
	zr      *zip.ReadCloser
	entries []Entry
	byName  map[string]*zip.File
}

// Open opens the archive at path and indexes its image entries in natural
// page order. The caller owns the returned handle and must Close it.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidArchive)
	}

	a := &Archive{
		path:   path,
		zr:     zr,
		byName: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		a.byName[f.Name] = f
		if !IsImageEntry(f.Name) {
			continue
		}
		a.entries = append(a.entries, Entry{Name: f.Name, Size: int64(f.UncompressedSize64)})
	}
	sort.SliceStable(a.entries, func(i, j int) bool {
		return natsort.Less(a.entries[i].Name, a.entries[j].Name)
	})
	return a, nil
}

// Close releases the underlying zip handle.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Path returns the archive's file path.
func (a *Archive) Path() string {
	return a.path
}

// Stem returns the archive's base name without the container extension.
func (a *Archive) Stem() string {
	return Stem(a.path)
}

// ImageEntries returns the archive's qualifying image entries in natural page
// order. An archive with no page images returns an empty slice.
func (a *Archive) ImageEntries() []Entry {
	return a.entries
}

// OpenEntry opens one entry for streaming. The caller must close the reader
// before opening another entry.
func (a *Archive) OpenEntry(name string) (io.ReadCloser, error) {
	f, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("archive: no entry %q in %s", name, filepath.Base(a.path))
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %q: %w", name, err)
	}
	return rc, nil
}

// ReadEntry reads one entry in full.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	rc, err := a.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading entry %q: %w", name, err)
	}
	return data, nil
}
