package raster

import (
	"bytes"
	"image"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/valyala/fasthttp"

	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/internal/errors"
)

// SourceImage is an image handle that either holds an encoding, a decoded
// buffer, or both. The encoding is read only, the decoded buffer is
// populated once on first use and then shared read only between callers.
type SourceImage struct {
	encoded     []byte
	fileName    string
	scaleFactor float64

	orientationOnce sync.Once
	orientation     Orientation

	mu         sync.RWMutex
	decoded    *PixelBuffer
	nativeSize image.Point
}

// SourceOption customizes a SourceImage at construction.
type SourceOption func(*SourceImage)

// WithScaleFactor sets the device pixel density of the source (default 1).
func WithScaleFactor(s float64) SourceOption {
	return func(src *SourceImage) {
		if s > 0 {
			src.scaleFactor = s
		}
	}
}

// WithOrientation overrides the orientation read from EXIF.
func WithOrientation(o Orientation) SourceOption {
	return func(src *SourceImage) {
		if o.Valid() {
			src.orientationOnce.Do(func() { src.orientation = o })
		}
	}
}

func newSource(encoded []byte, decoded *PixelBuffer, opts []SourceOption) *SourceImage {
	src := &SourceImage{
		encoded:     encoded,
		decoded:     decoded,
		scaleFactor: 1,
	}
	if decoded != nil {
		src.nativeSize = decoded.Size()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(src)
		}
	}
	return src
}

// NewSourceBytes takes ownership of an encoded image blob.
func NewSourceBytes(imgBytes []byte, opts ...SourceOption) *SourceImage {
	return newSource(imgBytes, nil, opts)
}

// NewSourceFile reads an encoded image file.
func NewSourceFile(imgFile string, opts ...SourceOption) (*SourceImage, error) {
	if abs, err := filepath.Abs(imgFile); err == nil {
		imgFile = abs
	}
	b, err := os.ReadFile(imgFile)
	if err != nil {
		return nil, NewError(KindSourceCreation, err)
	}
	src := newSource(b, nil, opts)
	src.fileName = imgFile
	return src, nil
}

// NewSourceURL loads a file:// or http(s):// URL.
func NewSourceURL(rawURL string, opts ...SourceOption) (*SourceImage, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewError(KindSourceCreation, err)
	}
	switch u.Scheme {
	case `file`, ``:
		return NewSourceFile(u.Path, opts...)
	case `http`, `https`:
		status, body, err := fasthttp.Get(nil, u.String())
		if err != nil {
			return nil, NewError(KindSourceCreation, err)
		}
		if status != fasthttp.StatusOK {
			return nil, NewError(KindSourceCreation, `GET `+u.Redacted()+`: status `+strconv.Itoa(status))
		}
		src := newSource(body, nil, opts)
		src.fileName = u.Redacted()
		return src, nil
	default:
		return nil, NewError(KindSourceCreation, `unsupported URL scheme "`+u.Scheme+`"`)
	}
}

// NewSourceReader drains r into an encoded blob.
func NewSourceReader(r io.Reader, opts ...SourceOption) (*SourceImage, error) {
	if r == nil {
		return nil, NewError(KindSourceCreation, consts.ErrNilParam)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, NewError(KindSourceCreation, err)
	}
	return newSource(b, nil, opts), nil
}

// NewSourceBuffer wraps an already decoded buffer. The source has no encoding.
func NewSourceBuffer(buf *PixelBuffer, opts ...SourceOption) *SourceImage {
	return newSource(nil, buf, opts)
}

// NewSourceImage copies img into a decoded source without encoding.
func NewSourceImage(img image.Image, opts ...SourceOption) (*SourceImage, error) {
	buf, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	return newSource(nil, buf, opts), nil
}

// FileName is the file or URL the source was loaded from, if any.
func (s *SourceImage) FileName() string { return s.fileName }

// ScaleFactor is the device pixel density of the source.
func (s *SourceImage) ScaleFactor() float64 { return s.scaleFactor }

// Orientation returns the EXIF orientation, OrientationUp when absent.
func (s *SourceImage) Orientation() Orientation {
	s.orientationOnce.Do(func() {
		s.orientation = OrientationUp
		if len(s.encoded) > 0 {
			if o, ok := exifOrientation(s.encoded); ok {
				s.orientation = o
			}
		}
	})
	return s.orientation
}

// RawBytes returns the encoded representation without decoding.
func (s *SourceImage) RawBytes() ([]byte, error) {
	if s == nil {
		return nil, NewError(KindNoEncodedRepresentation, consts.ErrNilSource)
	}
	if len(s.encoded) == 0 {
		return nil, NewError(KindNoEncodedRepresentation, `source was constructed from pixels`)
	}
	return s.encoded, nil
}

// HasEncoding reports whether RawBytes would succeed.
func (s *SourceImage) HasEncoding() bool { return s != nil && len(s.encoded) > 0 }

// Decoded reports whether the decode cache is populated.
func (s *SourceImage) Decoded() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decoded != nil
}

// Decode decodes at native resolution and caches the buffer.
// The returned buffer belongs to the source and must not be modified.
//
// Decode requires registration of image decoders, the common ones are
// registered by this package.
func (s *SourceImage) Decode() (*PixelBuffer, error) {
	if s == nil {
		return nil, NewError(KindDecode, consts.ErrNilSource)
	}
	s.mu.RLock()
	buf := s.decoded
	s.mu.RUnlock()
	if buf != nil {
		return buf, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.decoded != nil {
		return s.decoded, nil
	}
	if len(s.encoded) == 0 {
		return nil, NewError(KindDecode, `no encoded data`)
	}
	img, _, err := image.Decode(bytes.NewReader(s.encoded))
	if err != nil {
		return nil, NewError(KindDecode, err)
	}
	buf, err = FromImage(img)
	if err != nil {
		return nil, NewError(KindDecode, err)
	}
	s.decoded = buf
	s.nativeSize = buf.Size()
	return buf, nil
}

// NativeSize returns the pixel size, reading only the container header
// when the source is not decoded yet.
func (s *SourceImage) NativeSize() (image.Point, error) {
	if s == nil {
		return image.Point{}, NewError(KindDecode, consts.ErrNilSource)
	}
	s.mu.RLock()
	sz := s.nativeSize
	s.mu.RUnlock()
	if sz != (image.Point{}) {
		return sz, nil
	}
	if len(s.encoded) == 0 {
		return image.Point{}, NewError(KindDecode, `no encoded data`)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(s.encoded))
	if err != nil {
		return image.Point{}, NewError(KindDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Point{}, NewError(KindDecode, errors.Errorf(`invalid image size %dx%d`, cfg.Width, cfg.Height))
	}
	sz = image.Pt(cfg.Width, cfg.Height)
	s.mu.Lock()
	if s.nativeSize == (image.Point{}) {
		s.nativeSize = sz
	}
	s.mu.Unlock()
	return sz, nil
}
