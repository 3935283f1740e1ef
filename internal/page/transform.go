// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pdiddy/comicbind/pkg/types"
)

// Transform is one stage of the page pipeline. Apply returns the transformed
// image; it may return its input unchanged when the stage does not fire.
type Transform interface {
	Name() string
	Apply(img *image.NRGBA) (*image.NRGBA, error)
}

// Normalize flattens pages that carry transparency onto an opaque white
// canvas. Palette and grayscale sources are already plain after decode;
// only non-opaque pages pay for the blend.
type Normalize struct{}

func (Normalize) Name() string { return "normalize" }

func (Normalize) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	if img.Opaque() {
		return img, nil
	}
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0), nil
}

// FitBox downscales pages that exceed the bounding box, preserving aspect
// ratio so neither output dimension exceeds the box. Pages already inside
// the box pass through untouched; nothing is ever upscaled.
type FitBox struct {
	MaxWidth  int
	MaxHeight int
}

func (f FitBox) Name() string { return "fit" }

func (f FitBox) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() <= f.MaxWidth && b.Dy() <= f.MaxHeight {
		return img, nil
	}
	return imaging.Fit(img, f.MaxWidth, f.MaxHeight, imaging.Lanczos), nil
}

// Pipeline applies transforms in order. The zero value is the identity.
type Pipeline struct {
	stages []Transform
}

// NewPipeline builds a pipeline from stages, applied in the given order.
func NewPipeline(stages ...Transform) Pipeline {
	return Pipeline{stages: stages}
}

// FromConfig assembles the pipeline the configuration asks for: normalize
// first, then fit-to-box. Acceleration is appended by the converter, which
// owns the device.
func FromConfig(cfg types.ConvertConfig) Pipeline {
	var stages []Transform
	if cfg.Normalize {
		stages = append(stages, Normalize{})
	}
	if cfg.Resize {
		stages = append(stages, FitBox{MaxWidth: cfg.MaxWidth, MaxHeight: cfg.MaxHeight})
	}
	return Pipeline{stages: stages}
}

// With returns a pipeline with t appended after the existing stages.
func (p Pipeline) With(t Transform) Pipeline {
	stages := make([]Transform, 0, len(p.stages)+1)
	stages = append(stages, p.stages...)
	stages = append(stages, t)
	return Pipeline{stages: stages}
}

// Names lists the stage names in application order.
func (p Pipeline) Names() []string {
	names := make([]string, 0, len(p.stages))
	for _, t := range p.stages {
		names = append(names, t.Name())
	}
	return names
}

// Process runs the page through every stage in order. An error aborts this
// page's pipeline only; the image is left at the last successful stage's
// output, and the caller decides whether to keep or skip the page.
func (p Pipeline) Process(pg *Page) error {
	for _, t := range p.stages {
		img, err := t.Apply(pg.Image)
		if err != nil {
			return fmt.Errorf("%s %s: %w", t.Name(), pg.Name, err)
		}
		pg.Image = img
	}
	return nil
}
