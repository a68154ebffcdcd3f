// Package thumbnail decodes encoded images into a pixel buffer bounded by a
// maximum pixel size.
//
// The registered codecs have no scale-on-decode, so the pixels are decoded at
// native resolution and reduced with "github.com/nfnt/resize" before the
// buffer is built. Container and header checks run first, undecodable blobs
// fail before any pixel is decoded.
package thumbnail

import (
	"bytes"
	"image"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"

	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/raster"
)

// Decoder produces thumbnails whose longer edge is at most MaxPixelSize.
type Decoder struct {
	MaxPixelSize  int
	Interpolation Interpolation
}

// Interpolation selects the reduction filter, the zero value is Lanczos3.
type Interpolation uint8

const (
	Lanczos3 Interpolation = iota
	Bicubic
	Bilinear
	NearestNeighbor
)

func (i Interpolation) function() resize.InterpolationFunction {
	switch i {
	case Bicubic:
		return resize.Bicubic
	case Bilinear:
		return resize.Bilinear
	case NearestNeighbor:
		return resize.NearestNeighbor
	default:
		return resize.Lanczos3
	}
}

// Size computes the thumbnail size of an image of native size for the
// given maximum: the long edge is capped to maxPx, the short edge follows the
// aspect ratio, nothing is upscaled and no edge drops below 1.
func Size(native image.Point, maxPx int) image.Point {
	if native.X <= 0 || native.Y <= 0 || maxPx <= 0 {
		return image.Point{}
	}
	long := native.X
	if native.Y > long {
		long = native.Y
	}
	if long <= maxPx {
		return native
	}
	f := float64(maxPx) / float64(long)
	edge := func(v int) int {
		n := int(math.Round(float64(v) * f))
		if n < 1 {
			n = 1
		}
		if n > maxPx {
			n = maxPx
		}
		return n
	}
	if native.X >= native.Y {
		return image.Pt(maxPx, edge(native.Y))
	}
	return image.Pt(edge(native.X), maxPx)
}

// DecodeFile reads and thumbnails imgFile.
func (d *Decoder) DecodeFile(imgFile string) (*raster.PixelBuffer, error) {
	b, err := os.ReadFile(imgFile)
	if err != nil {
		return nil, raster.NewError(raster.KindSourceCreation, err)
	}
	return d.DecodeBytes(b)
}

// Decode reads the whole stream and thumbnails it.
func (d *Decoder) Decode(r io.Reader) (*raster.PixelBuffer, error) {
	if r == nil {
		return nil, raster.NewError(raster.KindSourceCreation, consts.ErrNilParam)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, raster.NewError(raster.KindSourceCreation, err)
	}
	return d.DecodeBytes(b)
}

// DecodeBytes thumbnails an encoded blob. Blobs that are not a recognized
// image container fail with SourceCreationError before any pixel is decoded,
// truncated pixel data fails with DecodeError.
func (d *Decoder) DecodeBytes(data []byte) (*raster.PixelBuffer, error) {
	if d == nil || d.MaxPixelSize <= 0 {
		return nil, raster.NewError(raster.KindInvalidTarget, `thumbnail max pixel size must be positive`)
	}
	if len(data) == 0 {
		return nil, raster.NewError(raster.KindSourceCreation, `empty image data`)
	}
	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), `image/`) {
		return nil, raster.NewError(raster.KindSourceCreation, `unrecognized image container: `+mt.String())
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, raster.NewError(raster.KindSourceCreation, err)
	}
	size := Size(image.Pt(cfg.Width, cfg.Height), d.MaxPixelSize)
	if size == (image.Point{}) {
		return nil, raster.NewError(raster.KindSourceCreation, `image header has no pixels`)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, raster.NewError(raster.KindDecode, err)
	}
	if b := img.Bounds(); b.Dx() != size.X || b.Dy() != size.Y {
		img = resize.Resize(uint(size.X), uint(size.Y), img, d.Interpolation.function())
	}
	buf, err := raster.FromImage(img)
	if err != nil {
		return nil, raster.NewError(raster.KindDecode, err)
	}
	return buf, nil
}
