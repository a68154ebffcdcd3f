package raster

import (
	"math/bits"
	"strconv"

	"github.com/srlehn/resample/internal/consts"
)

// PixelFormat describes the byte layout of a single pixel.
type PixelFormat uint8

const (
	// FormatRGBA is premultiplied R,G,B,A, the layout decoders produce.
	FormatRGBA PixelFormat = iota
	// FormatNRGBA is straight alpha R,G,B,A.
	FormatNRGBA
	// FormatARGB is straight alpha A,R,G,B (alpha first).
	FormatARGB
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return `RGBA8888-premultiplied`
	case FormatNRGBA:
		return `RGBA8888`
	case FormatARGB:
		return `ARGB8888`
	default:
		return `PixelFormat(` + strconv.Itoa(int(f)) + `)`
	}
}

func (f PixelFormat) valid() bool { return f <= FormatARGB }

// BytesPerPixel is 4 for every supported format.
func (f PixelFormat) BytesPerPixel() int { return 4 }

// BitsPerComponent is 8 for every supported format.
func (f PixelFormat) BitsPerComponent() int { return 8 }

// Premultiplied reports whether color components are premultiplied by alpha.
func (f PixelFormat) Premultiplied() bool { return f == FormatRGBA }

// ColorSpace is an opaque color space reference. Pixels are never converted.
type ColorSpace struct {
	Name string
}

var (
	SRGB      = &ColorSpace{Name: `sRGB`}
	DeviceRGB = &ColorSpace{Name: `DeviceRGB`}
)

// Layout describes a strided pixel region.
type Layout struct {
	Width      int
	Height     int
	Stride     int // bytes per row, 0 means MinStride
	Format     PixelFormat
	ColorSpace *ColorSpace // nil if unknown
}

// MinStride is the smallest valid row length in bytes.
func (l Layout) MinStride() int { return l.Width * l.Format.BytesPerPixel() }

func (l Layout) normalized() Layout {
	if l.Stride == 0 {
		l.Stride = l.MinStride()
	}
	return l
}

// Len returns Stride*Height, false when it overflows or exceeds consts.MaxBufferBytes.
func (l Layout) Len() (int, bool) {
	l = l.normalized()
	if l.Width < 0 || l.Height < 0 || l.Stride < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(l.Stride), uint64(l.Height))
	if hi != 0 || lo > consts.MaxBufferBytes || lo > uint64(maxInt) {
		return 0, false
	}
	return int(lo), true
}

const maxInt = int(^uint(0) >> 1)

// Validate checks dimensions, format and stride.
func (l Layout) Validate() error {
	l = l.normalized()
	if l.Width <= 0 || l.Height <= 0 {
		return NewError(KindLayoutMismatch, `non-positive pixel dimensions `+strconv.Itoa(l.Width)+`x`+strconv.Itoa(l.Height))
	}
	if !l.Format.valid() {
		return NewError(KindLayoutMismatch, `unsupported pixel format `+l.Format.String())
	}
	if hi, lo := bits.Mul64(uint64(l.Width), uint64(l.Format.BytesPerPixel())); hi != 0 || lo > uint64(maxInt) {
		return NewError(KindAllocation, `row length overflows`)
	}
	if l.Stride < l.MinStride() {
		return NewError(KindLayoutMismatch, `stride `+strconv.Itoa(l.Stride)+` below minimum `+strconv.Itoa(l.MinStride()))
	}
	return nil
}
