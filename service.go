package resample

import (
	"log/slog"

	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/internal/errors"
	"github.com/srlehn/resample/internal/logx"
	"github.com/srlehn/resample/raster"
)

// Service dispatches resize requests to one strategy per algorithm.
// It keeps no state between calls and is safe for concurrent use.
type Service struct {
	logger         *slog.Logger
	deviceScale    float64
	filterName     string
	allocator      raster.Allocator
	fastThumbnails bool
	overrides      map[raster.Algorithm]raster.Resampler
	resamplers     map[raster.Algorithm]raster.Resampler
}

var _ logx.LoggerProvider = (*Service)(nil)

// New builds a service, options are applied in order.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		deviceScale: consts.DefaultDeviceScale,
		filterName:  consts.DefaultFilterName,
	}
	if err := s.SetOptions(opts...); err != nil {
		return nil, err
	}
	s.resamplers = s.defaultResamplers()
	for alg, rsz := range s.overrides {
		s.resamplers[alg] = rsz
	}
	return s, nil
}

func (s *Service) Logger() *slog.Logger {
	if s == nil {
		return nil
	}
	return s.logger
}

// DeviceScale is the ambient density applied to requests with scale 0.
func (s *Service) DeviceScale() float64 { return s.deviceScale }

// Resampler returns the strategy registered for alg.
func (s *Service) Resampler(alg raster.Algorithm) (raster.Resampler, error) {
	rsz, ok := s.resamplers[alg]
	if !ok || rsz == nil {
		return nil, raster.NewError(raster.KindUnknownAlgorithm, `no resampler for `+alg.String())
	}
	return rsz, nil
}

// Resize resizes source to target with alg, preserving alpha at the
// ambient device scale.
func (s *Service) Resize(source *raster.SourceImage, target raster.TargetSize, alg raster.Algorithm) (*raster.Result, error) {
	return s.Do(&raster.Request{
		Source:        source,
		Target:        target,
		Algorithm:     alg,
		PreserveAlpha: true,
	})
}

// Do runs a single request. Every error is a *Failure.
func (s *Service) Do(req *raster.Request) (*raster.Result, error) {
	var alg raster.Algorithm
	if req != nil {
		alg = req.Algorithm
	}
	if s == nil {
		return nil, s.fail(alg, errors.NilReceiver())
	}
	if err := req.Validate(); err != nil {
		return nil, s.fail(alg, err)
	}
	rsz, err := s.Resampler(alg)
	if err != nil {
		return nil, s.fail(alg, err)
	}
	res, err := logx.TimeIt2(func() (*raster.Result, error) {
		return rsz.Resize(req)
	}, `resize`, s, `algorithm`, alg.String(), `target`, req.Target.String())
	if err != nil {
		return nil, s.fail(alg, err)
	}
	if res == nil || res.Buffer == nil {
		return nil, s.fail(alg, raster.NewError(raster.KindRasterizationFailed, consts.ErrNilImage))
	}
	res.Algorithm = alg
	logx.Debug(`resized`, s,
		`algorithm`, alg.String(),
		`size`, res.Buffer.Size(),
		`stride`, res.Buffer.Stride(),
		`density`, res.Density.String(),
		`scale`, res.Scale)
	return res, nil
}

func (s *Service) fail(alg raster.Algorithm, err error) error {
	f := &Failure{Algorithm: alg, Kind: raster.KindOf(err), Err: err}
	logx.IsErr(f, s, slog.LevelDebug, `algorithm`, alg.String(), `kind`, f.Kind.String())
	return f
}

// Failure is the normalized error of a resize, Kind is the failure kind
// reported by the strategy.
type Failure struct {
	Algorithm raster.Algorithm
	Kind      raster.Kind
	Err       error
}

func (f *Failure) Error() string {
	return f.Algorithm.String() + `: ` + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// ErrorStack forwards the stack trace of the cause.
func (f *Failure) ErrorStack() string {
	if st, ok := f.Err.(interface{ ErrorStack() string }); ok {
		return f.Algorithm.String() + `: ` + st.ErrorStack()
	}
	return f.Error()
}
