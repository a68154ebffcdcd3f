// Package testutil generates fixture images for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// Gradient returns a w×h image with a horizontal red and a vertical green
// ramp and a semi transparent lower half.
func Gradient(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0xff)
			if y >= h/2 {
				a = 0x80
			}
			m.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 0x40,
				A: a,
			})
		}
	}
	return m
}

// PNG encodes a gradient of w×h as PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Gradient(w, h)); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// JPEG encodes an opaque gradient of w×h as JPEG.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Gradient(w, h), &jpeg.Options{Quality: 85}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// Truncated cuts the encoding in half, keeping the container header.
func Truncated(b []byte) []byte {
	return append([]byte(nil), b[:len(b)/2]...)
}

// Garbage is not a recognized image container.
var Garbage = []byte(`this is not an image, just some text that no decoder accepts`)
