// Package rawcopy resizes into a buffer that replicates the source's
// pixel layout, drawing once with a high quality kernel.
package rawcopy

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/srlehn/resample/raster"
)

// Resizer uses "golang.org/x/image/draw"
type Resizer struct {
	// DeviceScale is the ambient output density used when a request asks
	// for scale 0. Zero means 1.
	DeviceScale float64
	// Interpolator defaults to draw.CatmullRom.
	Interpolator draw.Interpolator
}

var _ raster.Resampler = (*Resizer)(nil)

func (r *Resizer) Resize(req *raster.Request) (*raster.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := req.Source.Decode()
	if err != nil {
		return nil, err
	}
	if src.ColorSpace() == nil {
		return nil, raster.NewError(raster.KindUnsupportedColorSpace, `source has no color space`)
	}
	scale := raster.ResolveScale(req.Scale, r.DeviceScale)
	w, h := req.Target.Pixels(scale)

	l := raster.Layout{
		Width:      w,
		Height:     h,
		Stride:     src.Stride(),
		Format:     src.Format(),
		ColorSpace: src.ColorSpace(),
	}
	if l.Stride < l.MinStride() {
		// the source row length cannot hold a wider row
		l.Stride = 0
	}
	buf, err := raster.Allocate(l)
	if err != nil {
		return nil, err
	}

	dst := buf.Image()
	op := draw.Src
	if !req.PreserveAlpha {
		draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
		op = draw.Over
	}
	interp := r.Interpolator
	if interp == nil {
		interp = draw.CatmullRom
	}
	interp.Scale(dst, dst.Bounds(), src.Image(), src.Bounds(), op, nil)

	return &raster.Result{
		Buffer:      buf,
		Scale:       scale,
		Density:     raster.DensityDevice,
		Orientation: raster.OrientationUp,
		Algorithm:   raster.RawBufferCopy,
	}, nil
}
