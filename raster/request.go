package raster

import (
	"math"
	"strconv"
	"strings"
)

// TargetSize is a logical, density independent output size.
type TargetSize struct {
	Width  float64
	Height float64
}

func Size(w, h float64) TargetSize { return TargetSize{Width: w, Height: h} }

// Validate rejects non-positive and non-finite dimensions.
func (t TargetSize) Validate() error {
	if !(t.Width > 0) || !(t.Height > 0) || math.IsInf(t.Width, 0) || math.IsInf(t.Height, 0) {
		return NewError(KindInvalidTarget, `target size must be positive, got `+t.String())
	}
	return nil
}

func (t TargetSize) String() string {
	return strconv.FormatFloat(t.Width, 'g', -1, 64) + `x` + strconv.FormatFloat(t.Height, 'g', -1, 64)
}

// Pixels returns the integer pixel size at the given density scale.
// Each side is rounded to nearest and is at least 1.
func (t TargetSize) Pixels(scale float64) (w, h int) {
	return PixelLength(t.Width * scale), PixelLength(t.Height * scale)
}

// PixelLength rounds a logical length to a pixel count of at least 1.
func PixelLength(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

// Algorithm selects a resampling strategy.
type Algorithm uint8

const (
	ContextCapture Algorithm = iota
	RawBufferCopy
	CodecThumbnail
	FilterGraphLanczos
	ManualStridedScale
)

// Algorithms lists every strategy in declaration order.
var Algorithms = []Algorithm{ContextCapture, RawBufferCopy, CodecThumbnail, FilterGraphLanczos, ManualStridedScale}

var algorithmNames = [...]struct{ full, short string }{
	ContextCapture:     {`ContextCapture`, `context`},
	RawBufferCopy:      {`RawBufferCopy`, `rawcopy`},
	CodecThumbnail:     {`CodecThumbnail`, `thumbnail`},
	FilterGraphLanczos: {`FilterGraphLanczos`, `lanczos`},
	ManualStridedScale: {`ManualStridedScale`, `strided`},
}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a].full
	}
	return `Algorithm(` + strconv.Itoa(int(a)) + `)`
}

// Name is the short name used on the command line and in config files.
func (a Algorithm) Name() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a].short
	}
	return a.String()
}

// ParseAlgorithm accepts short and full names, case insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if strings.EqualFold(s, n.short) || strings.EqualFold(s, n.full) {
			return Algorithm(i), nil
		}
	}
	return 0, NewError(KindUnknownAlgorithm, `unknown algorithm "`+s+`"`)
}

// Orientation holds the EXIF orientation tag value (1-8).
type Orientation uint8

const (
	OrientationUp Orientation = iota + 1
	OrientationUpMirrored
	OrientationDown
	OrientationDownMirrored
	OrientationLeftMirrored
	OrientationRight
	OrientationRightMirrored
	OrientationLeft
)

func (o Orientation) Valid() bool { return o >= OrientationUp && o <= OrientationLeft }

// DensityConvention tells how Result.Scale relates to the buffer's pixel size.
type DensityConvention uint8

const (
	// DensityDevice: pixel size is round(target × Scale).
	DensityDevice DensityConvention = iota
	// DensityNone: pixel size is the integer target or a codec/filter extent, Scale is 1.
	DensityNone
	// DensitySource: pixel size is the integer target, Scale is the source's scale factor.
	DensitySource
)

func (d DensityConvention) String() string {
	switch d {
	case DensityDevice:
		return `device`
	case DensityNone:
		return `none`
	case DensitySource:
		return `source`
	default:
		return `DensityConvention(` + strconv.Itoa(int(d)) + `)`
	}
}

// Request is a single resize invocation.
type Request struct {
	Source        *SourceImage
	Target        TargetSize
	Algorithm     Algorithm
	PreserveAlpha bool
	// Scale is the density scale for ContextCapture and RawBufferCopy.
	// 0 inherits the ambient device scale.
	Scale float64
}

// Validate checks the request before anything is allocated.
func (r *Request) Validate() error {
	if r == nil {
		return NewError(KindInvalidTarget, `nil request`)
	}
	if r.Source == nil {
		return NewError(KindDecode, `nil source image`)
	}
	if err := r.Target.Validate(); err != nil {
		return err
	}
	if r.Scale < 0 || math.IsNaN(r.Scale) || math.IsInf(r.Scale, 0) {
		return NewError(KindInvalidTarget, `invalid density scale `+strconv.FormatFloat(r.Scale, 'g', -1, 64))
	}
	return nil
}

// Result is a resized buffer plus what is needed to reconstruct a
// device independent image from it.
type Result struct {
	Buffer      *PixelBuffer
	Scale       float64
	Density     DensityConvention
	Orientation Orientation
	Algorithm   Algorithm
}

// LogicalSize is the device independent size of the result.
func (r *Result) LogicalSize() TargetSize {
	if r == nil || r.Buffer == nil {
		return TargetSize{}
	}
	s := r.Scale
	if s <= 0 {
		s = 1
	}
	return TargetSize{Width: float64(r.Buffer.Width()) / s, Height: float64(r.Buffer.Height()) / s}
}

// Resampler resizes the source of a request into a newly allocated buffer.
type Resampler interface {
	Resize(req *Request) (*Result, error)
}

// ResolveScale maps a requested density of 0 to the ambient device density.
func ResolveScale(requested, ambient float64) float64 {
	if requested > 0 {
		return requested
	}
	if ambient > 0 {
		return ambient
	}
	return 1
}
