// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package accel

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			// Cover the full channel range, including the 0 and 255 extremes.
			v := uint8(y*16 + x)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 255 - v, B: v / 2, A: 255})
		}
	}
	return img
}

func TestVectorClampPreservesValidData(t *testing.T) {
	img := testImage()
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	d := Detect(true)
	require.True(t, d.Available())
	assert.Equal(t, "vector", d.Name())

	require.NoError(t, d.Clamp(img))
	assert.Equal(t, before, img.Pix, "valid channel values must survive the float round trip")
}

func TestVectorClampAfterRelease(t *testing.T) {
	d := Detect(true)
	img := testImage()
	require.NoError(t, d.Clamp(img))

	d.Release()
	require.NoError(t, d.Clamp(img), "device must keep working after a release")
	d.Release()
}

func TestVectorClampNilImage(t *testing.T) {
	d := Detect(true)
	assert.Error(t, d.Clamp(nil))
}

func TestDetectDisabled(t *testing.T) {
	d := Detect(false)
	assert.Equal(t, "none", d.Name())
	assert.False(t, d.Available())

	img := testImage()
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	assert.Error(t, d.Clamp(img))
	assert.Equal(t, before, img.Pix, "a failing device must not touch the image")
	d.Release()
}

// failDevice always errors without touching the image.
type failDevice struct {
	calls int
}

func (f *failDevice) Name() string             { return "fail" }
func (f *failDevice) Available() bool          { return true }
func (f *failDevice) Release()                 {}
func (f *failDevice) Clamp(*image.NRGBA) error { f.calls++; return errors.New("device gone") }

func TestClampTransformFallsBack(t *testing.T) {
	dev := &failDevice{}
	stage := Clamp(dev)
	assert.Equal(t, "clamp", stage.Name())

	img := testImage()
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	out, err := stage.Apply(img)
	require.NoError(t, err, "a device failure must not fail the page")
	assert.Same(t, img, out)
	assert.Equal(t, before, out.Pix)
	assert.Equal(t, 1, dev.calls)
}

func TestClampTransformRunsDevice(t *testing.T) {
	img := testImage()
	out, err := Clamp(Detect(true)).Apply(img)
	require.NoError(t, err)
	assert.Same(t, img, out)
}
