// Package codecthumb resizes by handing an encoded image to the thumbnail
// decoder, re-encoding decoded-only sources to PNG first.
package codecthumb

import (
	"math"

	"github.com/srlehn/resample/internal/encoder/encpng"
	"github.com/srlehn/resample/raster"
	"github.com/srlehn/resample/thumbnail"
)

type Resizer struct {
	// Interpolation is the thumbnail reduction filter, default Lanczos3.
	Interpolation thumbnail.Interpolation
}

var _ raster.Resampler = (*Resizer)(nil)

// Resize requests a thumbnail with a maximum pixel size of
// round(max(target.Width, target.Height)). The long edge of the output is
// capped to that value and the short edge follows the source aspect ratio,
// so the output generally differs from the requested target.
func (r *Resizer) Resize(req *raster.Request) (*raster.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	data, err := encoded(req.Source)
	if err != nil {
		return nil, err
	}
	dec := &thumbnail.Decoder{
		MaxPixelSize:  MaxPixelSize(req.Target),
		Interpolation: r.Interpolation,
	}
	buf, err := dec.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	if !req.PreserveAlpha {
		raster.Opaque(buf)
	}
	return &raster.Result{
		Buffer:      buf,
		Scale:       1,
		Density:     raster.DensityNone,
		Orientation: raster.OrientationUp,
		Algorithm:   raster.CodecThumbnail,
	}, nil
}

// MaxPixelSize is the thumbnail bound requested for target.
func MaxPixelSize(target raster.TargetSize) int {
	return raster.PixelLength(math.Max(target.Width, target.Height))
}

func encoded(src *raster.SourceImage) ([]byte, error) {
	if data, err := src.RawBytes(); err == nil {
		return data, nil
	} else if raster.KindOf(err) != raster.KindNoEncodedRepresentation {
		return nil, err
	}
	buf, err := src.Decode()
	if err != nil {
		return nil, err
	}
	data, err := (&encpng.PngEncoder{BestSpeed: true}).Bytes(buf.Image())
	if err != nil {
		return nil, raster.NewError(raster.KindSourceCreation, err)
	}
	return data, nil
}
