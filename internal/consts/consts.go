package consts

import (
	"errors"
)

var (
	ErrNilParam  = errors.New(`nil parameter`)
	ErrNilImage  = errors.New(`nil image`)
	ErrNilSource = errors.New(`nil source image`)
)

const (
	LibraryName = `resample`

	// MaxBufferBytes caps a single pixel buffer allocation (4 GiB).
	MaxBufferBytes = 1 << 32

	DefaultDeviceScale = 1.0

	DefaultFilterName  = `lanczos`
	DefaultLanczosTaps = 3
)
