// Package lanczos resizes through a one-node filter graph using
// "github.com/disintegration/gift".
//
// The scale is target.Width / source.Width with the aspect ratio fixed at
// 1.0: target.Height is ignored and the output height follows the source
// aspect ratio.
package lanczos

import (
	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/raster"
)

type Resizer struct {
	// FilterName selects the resampling filter, default "lanczos".
	FilterName string
}

var _ raster.Resampler = (*Resizer)(nil)

// ScaleFactor is the uniform scale applied for target.
func ScaleFactor(sourceWidth int, target raster.TargetSize) float64 {
	return target.Width / float64(sourceWidth)
}

func (r *Resizer) Resize(req *raster.Request) (*raster.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := req.Source.Decode()
	if err != nil {
		return nil, err
	}
	name := r.FilterName
	if len(name) == 0 {
		name = consts.DefaultFilterName
	}
	node, err := NewNode(name, ScaleFactor(src.Width(), req.Target))
	if err != nil {
		return nil, err
	}
	g := node.Graph(src.Bounds())
	if g == nil {
		return nil, raster.NewError(raster.KindRasterizationFailed, `filter output has no extent`)
	}
	ext := g.Bounds(src.Bounds())
	if ext.Empty() {
		return nil, raster.NewError(raster.KindRasterizationFailed, `filter output has no extent`)
	}
	buf, err := raster.Allocate(raster.Layout{
		Width:      ext.Dx(),
		Height:     ext.Dy(),
		Format:     raster.FormatNRGBA,
		ColorSpace: src.ColorSpace(),
	})
	if err != nil {
		return nil, err
	}
	g.Draw(buf.Image(), src.Image())
	if !req.PreserveAlpha {
		raster.Opaque(buf)
	}
	return &raster.Result{
		Buffer:      buf,
		Scale:       1,
		Density:     raster.DensityNone,
		Orientation: raster.OrientationUp,
		Algorithm:   raster.FilterGraphLanczos,
	}, nil
}
