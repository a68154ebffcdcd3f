package resample

import (
	"log/slog"

	"github.com/srlehn/resample/internal/errors"
	"github.com/srlehn/resample/raster"
	"github.com/srlehn/resample/resize/codecthumb"
	"github.com/srlehn/resample/resize/ctxcapture"
	"github.com/srlehn/resample/resize/lanczos"
	"github.com/srlehn/resample/resize/rawcopy"
	"github.com/srlehn/resample/resize/strided"
	"github.com/srlehn/resample/thumbnail"
)

type Option interface {
	ApplyOption(s *Service) error
}

var _ Option = (OptFunc)(nil)

type OptFunc func(*Service) error

func (o OptFunc) ApplyOption(s *Service) error { return o(s) }

var _ Option = (Options)(nil)

type Options []Option

func (o Options) ApplyOption(s *Service) error { return s.SetOptions([]Option(o)...) }

func (s *Service) SetOptions(opts ...Option) error {
	if s == nil {
		return errors.NilReceiver()
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.ApplyOption(s); err != nil {
			return errors.New(err)
		}
	}
	return nil
}

// SetLogger sets the logger, nil silences the service.
func SetLogger(logger *slog.Logger) Option {
	return OptFunc(func(s *Service) error { s.logger = logger; return nil })
}

// SetDeviceScale sets the ambient output density used for requests with scale 0.
func SetDeviceScale(scale float64) Option {
	return OptFunc(func(s *Service) error {
		if !(scale > 0) {
			return errors.New(`device scale must be positive`)
		}
		s.deviceScale = scale
		return nil
	})
}

// SetFilterName selects the gift resampling filter of FilterGraphLanczos.
func SetFilterName(name string) Option {
	return OptFunc(func(s *Service) error { s.filterName = name; return nil })
}

// SetAllocator sets the scratch allocator of ManualStridedScale.
func SetAllocator(a raster.Allocator) Option {
	return OptFunc(func(s *Service) error { s.allocator = a; return nil })
}

// SetFastThumbnails uses bilinear instead of Lanczos3 for CodecThumbnail.
func SetFastThumbnails(fast bool) Option {
	return OptFunc(func(s *Service) error { s.fastThumbnails = fast; return nil })
}

// SetResampler replaces the strategy registered for alg.
func SetResampler(alg raster.Algorithm, rsz raster.Resampler) Option {
	return OptFunc(func(s *Service) error {
		if rsz == nil {
			return errors.NilParam()
		}
		if s.overrides == nil {
			s.overrides = make(map[raster.Algorithm]raster.Resampler)
		}
		s.overrides[alg] = rsz
		return nil
	})
}

// defaultResamplers builds the built-in strategies from the service config.
func (s *Service) defaultResamplers() map[raster.Algorithm]raster.Resampler {
	interp := thumbnail.Lanczos3
	if s.fastThumbnails {
		interp = thumbnail.Bilinear
	}
	return map[raster.Algorithm]raster.Resampler{
		raster.ContextCapture:     &ctxcapture.Resizer{DeviceScale: s.deviceScale},
		raster.RawBufferCopy:      &rawcopy.Resizer{DeviceScale: s.deviceScale},
		raster.CodecThumbnail:     &codecthumb.Resizer{Interpolation: interp},
		raster.FilterGraphLanczos: &lanczos.Resizer{FilterName: s.filterName},
		raster.ManualStridedScale: &strided.Resizer{Allocator: s.allocator},
	}
}
