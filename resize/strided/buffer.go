package strided

import (
	"image"

	"github.com/bamiaux/rez"
	"github.com/disintegration/imaging"

	"github.com/srlehn/resample/internal"
	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/internal/errors"
	"github.com/srlehn/resample/raster"
)

// Buffer is a strided scratch region of 32 bit pixels, 8 bits per
// component, alpha first, straight alpha.
type Buffer struct {
	Data     []byte
	Width    int
	Height   int
	RowBytes int
}

const (
	bytesPerPixel = 4
	// rez rejects planes with an edge shorter than this
	rezMinEdge = 2
)

// ScaleFunc scales src into dst. A non-nil error is a failed scale status.
type ScaleFunc func(dst, src *Buffer) error

// RezScale resamples with a Lanczos filter of "github.com/bamiaux/rez",
// writing straight into dst.Data. Buffers with an edge below 2 pixels are
// scaled with ImagingScale instead.
func RezScale(dst, src *Buffer) (err error) {
	if dst == nil || src == nil {
		return raster.NewError(raster.KindScaleOperationFailed, consts.ErrNilParam)
	}
	if min(src.Width, src.Height, dst.Width, dst.Height) < rezMinEdge {
		return ImagingScale(dst, src)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf(`rez: %v`, r)
		}
	}()
	// rez filters the four packed channels independently, so neither the
	// channel order nor the alpha convention of the container matters
	return rez.Convert(dst.packed(), src.packed(), rez.NewLanczosFilter(consts.DefaultLanczosTaps))
}

// ImagingScale resamples with the Lanczos filter of
// "github.com/disintegration/imaging" and writes the alpha first result
// into dst.Data.
func ImagingScale(dst, src *Buffer) error {
	if dst == nil || src == nil {
		return raster.NewError(raster.KindScaleOperationFailed, consts.ErrNilParam)
	}
	if dst.Width <= 0 || dst.Height <= 0 || src.Width <= 0 || src.Height <= 0 {
		return errors.Errorf(`empty scale region %dx%d -> %dx%d`, src.Width, src.Height, dst.Width, dst.Height)
	}
	view := &raster.ARGB{Pix: src.Data, Stride: src.RowBytes, Rect: image.Rect(0, 0, src.Width, src.Height)}
	scaled := imaging.Resize(view, dst.Width, dst.Height, imaging.Lanczos)
	rowBytes := dst.Width * bytesPerPixel
	for y := 0; y < dst.Height; y++ {
		in := scaled.Pix[y*scaled.Stride : y*scaled.Stride+rowBytes]
		out := dst.Data[y*dst.RowBytes : y*dst.RowBytes+rowBytes]
		swizzleToARGB(out, in)
	}
	return nil
}

// swizzleToARGB copies straight RGBA pixels of in into out as ARGB.
func swizzleToARGB(out, in []byte) {
	for i := 0; i+bytesPerPixel <= len(in); i += bytesPerPixel {
		out[i], out[i+1], out[i+2], out[i+3] = in[i+3], in[i], in[i+1], in[i+2]
	}
}

// packed views b as a 4 channel container for rez.
func (b *Buffer) packed() *image.RGBA {
	return &image.RGBA{Pix: b.Data, Stride: b.RowBytes, Rect: image.Rect(0, 0, b.Width, b.Height)}
}

// alloc registers the release of a scratch region with scope before returning it.
func alloc(a raster.Allocator, scope internal.Scope, n int) ([]byte, error) {
	b, err := a.Alloc(n)
	if err != nil {
		return nil, err
	}
	scope.OnClose(func() error { a.Free(b); return nil })
	return b, nil
}

// capture copies src into a new alpha first scratch buffer owned by scope.
func capture(a raster.Allocator, scope internal.Scope, src *raster.PixelBuffer) (*Buffer, error) {
	if src.BitsPerComponent() != 8 || src.Format().BytesPerPixel() != bytesPerPixel {
		return nil, raster.NewError(raster.KindBufferInit, `unsupported source layout `+src.Format().String())
	}
	w, h := src.Width(), src.Height()
	l := raster.Layout{Width: w, Height: h, Format: raster.FormatARGB}
	n, ok := l.Len()
	if !ok {
		return nil, raster.NewError(raster.KindBufferInit, `source too large`)
	}
	data, err := alloc(a, scope, n)
	if err != nil {
		return nil, raster.NewError(raster.KindBufferInit, err)
	}
	straight := imaging.Clone(src.Image())
	rowBytes := l.MinStride()
	for y := 0; y < h; y++ {
		in := straight.Pix[y*straight.Stride : y*straight.Stride+rowBytes]
		out := data[y*rowBytes : (y+1)*rowBytes]
		swizzleToARGB(out, in)
	}
	return &Buffer{Data: data, Width: w, Height: h, RowBytes: rowBytes}, nil
}
