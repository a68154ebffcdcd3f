package internal

import (
	"image"
	"io"
)

type ImageEncoder interface {
	Encode(w io.Writer, img image.Image, fileExt string) error
}
