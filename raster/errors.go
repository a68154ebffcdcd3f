package raster

import (
	"github.com/srlehn/resample/internal/errors"
)

// Kind classifies resampling failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAllocation
	KindLayoutMismatch
	KindDecode
	KindNoEncodedRepresentation
	KindUnsupportedColorSpace
	KindSourceCreation
	KindFilterUnavailable
	KindRasterizationFailed
	KindBufferInit
	KindScaleOperationFailed
	KindInvalidTarget
	KindUnknownAlgorithm
)

var kindNames = [...]string{
	KindUnknown:                 `UnknownError`,
	KindAllocation:              `AllocationError`,
	KindLayoutMismatch:          `LayoutMismatch`,
	KindDecode:                  `DecodeError`,
	KindNoEncodedRepresentation: `NoEncodedRepresentation`,
	KindUnsupportedColorSpace:   `UnsupportedColorSpace`,
	KindSourceCreation:          `SourceCreationError`,
	KindFilterUnavailable:       `FilterUnavailable`,
	KindRasterizationFailed:     `RasterizationFailed`,
	KindBufferInit:              `BufferInitError`,
	KindScaleOperationFailed:    `ScaleOperationFailed`,
	KindInvalidTarget:           `InvalidTarget`,
	KindUnknownAlgorithm:        `UnknownAlgorithm`,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Error is the typed failure returned by every resampler.
// Err carries the cause with a stack trace.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return `<nil>`
	}
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + `: ` + e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error of the same kind, so Kind sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && t.Err == nil
}

// ErrorStack returns the stack of the cause if one was recorded.
func (e *Error) ErrorStack() string {
	if e == nil {
		return ``
	}
	var errGo *errors.Error
	if errors.As(e.Err, &errGo) {
		return e.Kind.String() + `: ` + errGo.ErrorStack()
	}
	return e.Error()
}

// NewError wraps cause into a failure of the given kind.
// cause may be an error or a message string.
func NewError(kind Kind, cause any) error {
	if cause == nil {
		return &Error{Kind: kind}
	}
	if e, ok := cause.(*Error); ok && e.Kind == kind {
		return e
	}
	return &Error{Kind: kind, Err: errors.Wrap(cause, 1)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// sentinels for errors.Is
var (
	ErrAllocation              = &Error{Kind: KindAllocation}
	ErrLayoutMismatch          = &Error{Kind: KindLayoutMismatch}
	ErrDecode                  = &Error{Kind: KindDecode}
	ErrNoEncodedRepresentation = &Error{Kind: KindNoEncodedRepresentation}
	ErrUnsupportedColorSpace   = &Error{Kind: KindUnsupportedColorSpace}
	ErrSourceCreation          = &Error{Kind: KindSourceCreation}
	ErrFilterUnavailable       = &Error{Kind: KindFilterUnavailable}
	ErrRasterizationFailed     = &Error{Kind: KindRasterizationFailed}
	ErrBufferInit              = &Error{Kind: KindBufferInit}
	ErrScaleOperationFailed    = &Error{Kind: KindScaleOperationFailed}
	ErrInvalidTarget           = &Error{Kind: KindInvalidTarget}
	ErrUnknownAlgorithm        = &Error{Kind: KindUnknownAlgorithm}
)
