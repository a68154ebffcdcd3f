package encpng

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/srlehn/resample/internal"
	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/internal/errors"
)

var _ internal.ImageEncoder = (*PngEncoder)(nil)

type PngEncoder struct {
	// BestSpeed trades file size for encoding time, used for transient re-encodes.
	BestSpeed bool
}

func (e *PngEncoder) Encode(w io.Writer, img image.Image, fileExt string) error {
	if w == nil || img == nil {
		return errors.New(consts.ErrNilParam)
	}
	fileExtParts := strings.Split(fileExt, `.`)
	fileExt = fileExtParts[len(fileExtParts)-1]
	fmtStr := strings.ToLower(strings.TrimPrefix(fileExt, `.`))
	if len(fmtStr) > 0 && fmtStr != `png` {
		return errors.New(`unsupported file format`)
	}
	enc := &png.Encoder{}
	if e != nil && e.BestSpeed {
		enc.CompressionLevel = png.BestSpeed
	}
	if err := enc.Encode(w, img); err != nil {
		return errors.New(err)
	}
	return nil
}

// Bytes encodes img into a new PNG blob.
func (e *PngEncoder) Bytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, img, `png`); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
