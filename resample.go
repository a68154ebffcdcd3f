// Package resample resizes raster images with interchangeable strategies.
//
//	src := raster.NewSourceBytes(jpegBytes)
//	res, err := resample.Resize(src, raster.Size(200, 200), raster.ManualStridedScale)
//
// The strategies live in the resize subpackages, the data model in raster.
package resample

import (
	"sync"

	"github.com/srlehn/resample/raster"
)

var (
	defaultMu      sync.Mutex
	defaultService *Service
)

// Default returns the lazily built service with default options.
func Default() (*Service, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultService != nil {
		return defaultService, nil
	}
	s, err := New()
	if err != nil {
		return nil, err
	}
	defaultService = s
	return s, nil
}

// Resize uses the default service.
func Resize(source *raster.SourceImage, target raster.TargetSize, alg raster.Algorithm) (*raster.Result, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return s.Resize(source, target, alg)
}

// NewSourceBytes - for use with "embed", etc.
func NewSourceBytes(imgBytes []byte, opts ...raster.SourceOption) *raster.SourceImage {
	return raster.NewSourceBytes(imgBytes, opts...)
}

// NewSourceFile ...
func NewSourceFile(imgFile string, opts ...raster.SourceOption) (*raster.SourceImage, error) {
	return raster.NewSourceFile(imgFile, opts...)
}
