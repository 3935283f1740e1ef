// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page decodes archive image entries and carries each one through a
// configurable transform pipeline to an encoded document page.
package page

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Comic archives carry pages in formats beyond the png/jpeg/gif the
	// imaging library registers itself.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Page is one decoded comic page on its way into the output document.
type Page struct {
	// Name is the source entry name inside the archive.
	Name string

	// Index is the page's zero-based position in natural order.
	Index int

	// Image is the decoded raster data. Transforms replace it in place;
	// the converter drops it once the page is encoded.
	Image *image.NRGBA
}

// Decode reads one archive entry into a Page. Camera-style EXIF orientation
// is applied during decode. A failure here is that entry's failure only; the
// caller decides whether the rest of the archive continues.
func Decode(r io.Reader, name string) (*Page, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return &Page{Name: name, Image: imaging.Clone(img)}, nil
}

// EncodeJPEG encodes the page for document assembly at the given quality
// (1-100). Alpha is discarded by the JPEG format; enable the normalize
// transform to flatten transparency onto white first.
func EncodeJPEG(p *Page, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, p.Image, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", p.Name, err)
	}
	return buf.Bytes(), nil
}
