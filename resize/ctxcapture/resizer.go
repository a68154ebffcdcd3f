// Package ctxcapture resizes by drawing the source into a scratch drawing
// context and capturing the context's pixels.
package ctxcapture

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/srlehn/resample/raster"
)

// Resizer uses "github.com/fogleman/gg"
type Resizer struct {
	// DeviceScale is the ambient output density used when a request asks
	// for scale 0. Zero means 1.
	DeviceScale float64
}

var _ raster.Resampler = (*Resizer)(nil)

// Resize produces round(target × scale) pixels with the context's default
// interpolation.
func (r *Resizer) Resize(req *raster.Request) (*raster.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := req.Source.Decode()
	if err != nil {
		return nil, err
	}
	scale := raster.ResolveScale(req.Scale, r.DeviceScale)
	w, h := req.Target.Pixels(scale)

	buf, err := raster.Allocate(raster.Layout{
		Width:      w,
		Height:     h,
		Format:     raster.FormatRGBA,
		ColorSpace: raster.SRGB,
	})
	if err != nil {
		return nil, err
	}
	surface := buf.Image().(*image.RGBA)
	dc := gg.NewContextForRGBA(surface)
	if !req.PreserveAlpha {
		dc.SetRGB(0, 0, 0)
		dc.Clear()
	}
	dc.Scale(float64(w)/float64(src.Width()), float64(h)/float64(src.Height()))
	dc.DrawImage(src.Image(), 0, 0)

	return &raster.Result{
		Buffer:      buf,
		Scale:       scale,
		Density:     raster.DensityDevice,
		Orientation: raster.OrientationUp,
		Algorithm:   raster.ContextCapture,
	}, nil
}
