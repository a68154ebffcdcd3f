// Package strided resizes through manually managed strided scratch buffers.
//
// Both scratch buffers come from an Allocator and are released on every
// return path, including failures of the capture or the scale routine.
// The output keeps the source's scale factor and orientation instead of
// deriving a density from its pixel size.
package strided

import (
	"github.com/srlehn/resample/internal"
	"github.com/srlehn/resample/raster"
)

type Resizer struct {
	// Allocator provides the scratch buffers, default raster.HeapAllocator.
	Allocator raster.Allocator
	// Scale defaults to RezScale.
	Scale ScaleFunc
}

var _ raster.Resampler = (*Resizer)(nil)

func (r *Resizer) Resize(req *raster.Request) (_ *raster.Result, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := req.Source.Decode()
	if err != nil {
		return nil, err
	}
	var a raster.Allocator = raster.HeapAllocator{}
	if r.Allocator != nil {
		a = r.Allocator
	}
	scaleFn := r.Scale
	if scaleFn == nil {
		scaleFn = RezScale
	}

	scope := internal.NewScope()
	defer func() {
		if errClose := scope.Close(); errClose != nil && err == nil {
			err = raster.NewError(raster.KindAllocation, errClose)
		}
	}()

	srcBuf, err := capture(a, scope, src)
	if err != nil {
		return nil, err
	}

	destWidth := raster.PixelLength(req.Target.Width)
	destHeight := raster.PixelLength(req.Target.Height)
	destLayout := raster.Layout{
		Width:      destWidth,
		Height:     destHeight,
		Stride:     destWidth * src.Format().BytesPerPixel(),
		Format:     raster.FormatARGB,
		ColorSpace: src.ColorSpace(),
	}
	n, ok := destLayout.Len()
	if !ok {
		return nil, raster.NewError(raster.KindAllocation, `destination too large`)
	}
	destData, err := alloc(a, scope, n)
	if err != nil {
		return nil, raster.NewError(raster.KindAllocation, err)
	}
	destBuf := &Buffer{Data: destData, Width: destWidth, Height: destHeight, RowBytes: destLayout.Stride}

	if err := scaleFn(destBuf, srcBuf); err != nil {
		return nil, raster.NewError(raster.KindScaleOperationFailed, err)
	}

	// the scratch region is released with scope, hand out a copy
	out, err := raster.Allocate(destLayout)
	if err != nil {
		return nil, err
	}
	copy(out.Data(), destData)
	if !req.PreserveAlpha {
		raster.Opaque(out)
	}

	return &raster.Result{
		Buffer:      out,
		Scale:       req.Source.ScaleFactor(),
		Density:     raster.DensitySource,
		Orientation: req.Source.Orientation(),
		Algorithm:   raster.ManualStridedScale,
	}, nil
}
