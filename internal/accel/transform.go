// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package accel

import (
	"image"

	"github.com/pdiddy/comicbind/internal/page"
)

// Clamp wraps the device's pin-to-range pass as a pipeline stage. A device
// failure on a page is not an error: that page continues with its
// unaccelerated image, so a flaky device never blocks a conversion.
func Clamp(d Device) page.Transform {
	return deviceClamp{dev: d}
}

type deviceClamp struct {
	dev Device
}

func (c deviceClamp) Name() string { return "clamp" }

func (c deviceClamp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	// Devices leave the image untouched on error, so the fallback is the
	// input itself.
	_ = c.dev.Clamp(img)
	return img, nil
}
