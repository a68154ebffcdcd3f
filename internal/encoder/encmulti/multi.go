package encmulti

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/srlehn/resample/internal"
	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/internal/errors"
)

var _ internal.ImageEncoder = (*MultiEncoder)(nil)

// MultiEncoder picks the codec by file extension.
type MultiEncoder struct {
	JPEGQuality int // 0 means 90
}

// Encode accepts a bare extension or a whole filename as fileExt.
func (e *MultiEncoder) Encode(w io.Writer, img image.Image, fileExt string) error {
	if w == nil || img == nil {
		return errors.New(consts.ErrNilParam)
	}
	fileExtParts := strings.Split(fileExt, `.`)
	fileExt = fileExtParts[len(fileExtParts)-1]
	fmtStr := strings.ToLower(strings.TrimPrefix(fileExt, `.`))

	if len(fmtStr) == 0 {
		return errors.New(`no file format specified`)
	}
	var err error
	switch fmtStr {
	case `bmp`:
		err = bmp.Encode(w, img)
	case `gif`:
		err = gif.Encode(w, img, nil)
	case `png`:
		err = png.Encode(w, img)
	case `tif`, `tiff`:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.LZW, Predictor: true})
	case `jpg`, `jpeg`:
		q := e.JPEGQuality
		if q <= 0 {
			q = 90
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	default:
		err = errors.New(`unsupported file format: "` + fmtStr + `"`)
	}
	if err != nil {
		return errors.New(err)
	}
	return nil
}
