package main

import (
	"archive/zip"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	fixturePages  = 12
	fixtureWidth  = 800
	fixtureHeight = 1200
)

// Fixtures generates a sample archive of synthetic pages into testdata/ for
// manual conversion runs.
func Fixtures() error {
	mg.Deps(Init)

	path := filepath.Join("testdata", "sample.cbz")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	zw := zip.NewWriter(f)
	for i := 1; i <= fixturePages; i++ {
		w, err := zw.Create(fmt.Sprintf("page%03d.png", i))
		if err != nil {
			f.Close()
			return fmt.Errorf("adding page %d: %w", i, err)
		}
		if err := png.Encode(w, pageImage(i)); err != nil {
			f.Close()
			return fmt.Errorf("encoding page %d: %w", i, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finishing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	fmt.Printf("Wrote %s (%d pages)\n", path, fixturePages)
	return nil
}

// pageImage draws a page with a shade unique to its number and a band whose
// position encodes the page order, so misordered output is visible at a glance.
func pageImage(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fixtureWidth, fixtureHeight))
	shade := uint8(180 + 6*(n%10))
	bg := color.NRGBA{R: shade, G: shade, B: 255, A: 255}
	for y := 0; y < fixtureHeight; y++ {
		for x := 0; x < fixtureWidth; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}

	bandTop := (n - 1) * fixtureHeight / fixturePages
	bandBottom := bandTop + fixtureHeight/fixturePages
	for y := bandTop; y < bandBottom && y < fixtureHeight; y++ {
		for x := 0; x < fixtureWidth; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 40, B: 80, A: 255})
		}
	}
	return img
}
