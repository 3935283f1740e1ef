// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package accel routes decoded pages through an accelerated numeric device.
// The only built-in device is a pure-Go vector lane; the interface is the
// seam where real accelerator backends slot in.
package accel

import (
	"errors"
	"image"
)

// Device processes page pixel data in bulk.
type Device interface {
	// Name identifies the device ("vector", "none").
	Name() string

	// Available reports whether the device can process pages.
	Available() bool

	// Clamp pins every channel value into the valid display range, in
	// place. Implementations must leave img unchanged when returning an
	// error, so callers can fall back to the unprocessed page.
	Clamp(img *image.NRGBA) error

	// Release drops the device's working memory. The converter calls it
	// after every batch and after every archive.
	Release()
}

// Detect returns the vector device when acceleration is enabled, otherwise
// the none device. There is no probing to do for the built-in lane; the
// signature leaves room for backends that need it.
func Detect(enabled bool) Device {
	if !enabled {
		return noneDevice{}
	}
	return &vectorDevice{}
}

// vectorDevice runs pages through a reusable float32 scratch buffer. For
// well-formed decoded data the round trip reproduces every channel value
// exactly; the float lane is the extension point where value transforms
// beyond clamping would run.
type vectorDevice struct {
	scratch []float32
}

func (d *vectorDevice) Name() string { return "vector" }

func (d *vectorDevice) Available() bool { return true }

func (d *vectorDevice) Clamp(img *image.NRGBA) error {
	if img == nil {
		return errors.New("accel: nil image")
	}
	n := len(img.Pix)
	if cap(d.scratch) < n {
		d.scratch = make([]float32, n)
	}
	buf := d.scratch[:n]
	for i, v := range img.Pix {
		buf[i] = float32(v) / 255
	}
	for i, v := range buf {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		img.Pix[i] = uint8(v*255 + 0.5)
	}
	return nil
}

func (d *vectorDevice) Release() {
	d.scratch = nil
}

// noneDevice is the disabled state: never available, never processes.
type noneDevice struct{}

func (noneDevice) Name() string { return "none" }

func (noneDevice) Available() bool { return false }

func (noneDevice) Clamp(*image.NRGBA) error {
	return errors.New("accel: no device available")
}

func (noneDevice) Release() {}
