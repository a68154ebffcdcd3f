package strided_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/resample/internal/testutil"
	"github.com/srlehn/resample/raster"
	"github.com/srlehn/resample/resize/strided"
)

// failingAllocator refuses the allocation with index failAt (0 based).
type failingAllocator struct {
	raster.CountingAllocator
	failAt int
	calls  int
}

func (a *failingAllocator) Alloc(n int) ([]byte, error) {
	defer func() { a.calls++ }()
	if a.calls == a.failAt {
		return nil, errors.New(`out of memory`)
	}
	return a.CountingAllocator.Alloc(n)
}

func TestResize(t *testing.T) {
	alloc := &raster.CountingAllocator{}
	src := raster.NewSourceBytes(testutil.PNG(t, 64, 48), raster.WithScaleFactor(2), raster.WithOrientation(raster.OrientationLeft))
	res, err := (&strided.Resizer{Allocator: alloc}).Resize(&raster.Request{
		Source:        src,
		Target:        raster.Size(32, 24),
		PreserveAlpha: true,
	})
	require.NoError(t, err)
	buf := res.Buffer
	assert.Equal(t, image.Pt(32, 24), buf.Size())
	assert.Equal(t, 32*4, buf.Stride())
	assert.Equal(t, 32*4*24, buf.Len())
	assert.Equal(t, raster.FormatARGB, buf.Format())
	assert.Equal(t, 2.0, res.Scale, "source density is kept")
	assert.Equal(t, raster.DensitySource, res.Density)
	assert.Equal(t, raster.OrientationLeft, res.Orientation)
	assert.Equal(t, raster.Size(16, 12), res.LogicalSize())

	assert.Equal(t, 2, alloc.Total(), "source and destination scratch")
	assert.Zero(t, alloc.Live())
	assert.Zero(t, alloc.LiveBytes())
}

func TestResizeScaleFailureReleasesScratch(t *testing.T) {
	alloc := &raster.CountingAllocator{}
	var seen *strided.Buffer
	rsz := &strided.Resizer{
		Allocator: alloc,
		Scale: func(dst, src *strided.Buffer) error {
			seen = dst
			assert.Equal(t, 2, alloc.Live(), "both scratch buffers are live while scaling")
			return errors.New(`kvImageInvalidParameter`)
		},
	}
	src := raster.NewSourceBytes(testutil.PNG(t, 20, 20))
	res, err := rsz.Resize(&raster.Request{Source: src, Target: raster.Size(7, 5)})
	assert.Nil(t, res)
	assert.Equal(t, raster.KindScaleOperationFailed, raster.KindOf(err))
	require.NotNil(t, seen)
	assert.Equal(t, 7*4, seen.RowBytes)
	assert.Len(t, seen.Data, 7*4*5)
	assert.Zero(t, alloc.Live())
	assert.Zero(t, alloc.LiveBytes())
}

func TestResizeAllocationFailures(t *testing.T) {
	tests := map[string]struct {
		failAt int
		want   raster.Kind
	}{
		"source scratch":      {0, raster.KindBufferInit},
		"destination scratch": {1, raster.KindAllocation},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			alloc := &failingAllocator{failAt: tc.failAt}
			src := raster.NewSourceBytes(testutil.PNG(t, 16, 16))
			res, err := (&strided.Resizer{Allocator: alloc}).Resize(&raster.Request{Source: src, Target: raster.Size(8, 8)})
			assert.Nil(t, res)
			assert.Equal(t, tc.want, raster.KindOf(err))
			assert.Zero(t, alloc.Live())
		})
	}
}

func TestResizeInvalidTargetAllocatesNothing(t *testing.T) {
	alloc := &raster.CountingAllocator{}
	src := raster.NewSourceBytes(testutil.PNG(t, 16, 16))
	_, err := (&strided.Resizer{Allocator: alloc}).Resize(&raster.Request{Source: src, Target: raster.Size(0, 8)})
	assert.Equal(t, raster.KindInvalidTarget, raster.KindOf(err))
	assert.Zero(t, alloc.Total())
	assert.False(t, src.Decoded())
}

func TestResizeChannelOrder(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(m.Pix); i += 4 {
		copy(m.Pix[i:], []byte{250, 20, 10, 255})
	}
	src, err := raster.NewSourceImage(m)
	require.NoError(t, err)
	res, err := (&strided.Resizer{}).Resize(&raster.Request{Source: src, Target: raster.Size(4, 4), PreserveAlpha: true})
	require.NoError(t, err)
	assert.Equal(t, byte(255), res.Buffer.Data()[0], "alpha first")
	c := res.Buffer.Image().At(2, 2).(color.NRGBA)
	assert.InDelta(t, 250, c.R, 2)
	assert.InDelta(t, 20, c.G, 2)
	assert.InDelta(t, 10, c.B, 2)
}

func TestResizeThinBuffers(t *testing.T) {
	for _, tc := range []struct {
		name        string
		src, target image.Point
	}{
		{`1x1 to 1x1`, image.Pt(1, 1), image.Pt(1, 1)},
		{`1x1 to 5x5`, image.Pt(1, 1), image.Pt(5, 5)},
		{`3x3 to 1x1`, image.Pt(3, 3), image.Pt(1, 1)},
		{`5x1 to 2x1`, image.Pt(5, 1), image.Pt(2, 1)},
		{`1x6 to 1x3`, image.Pt(1, 6), image.Pt(1, 3)},
		{`64x64 to 0.4x0.4`, image.Pt(64, 64), image.Pt(0, 0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := image.NewNRGBA(image.Rect(0, 0, tc.src.X, tc.src.Y))
			for i := 0; i < len(m.Pix); i += 4 {
				copy(m.Pix[i:], []byte{250, 20, 10, 200})
			}
			src, err := raster.NewSourceImage(m)
			require.NoError(t, err)
			target := raster.Size(float64(tc.target.X), float64(tc.target.Y))
			want := tc.target
			if want == (image.Point{}) {
				target, want = raster.Size(0.4, 0.4), image.Pt(1, 1)
			}
			alloc := &raster.CountingAllocator{}
			res, err := (&strided.Resizer{Allocator: alloc}).Resize(&raster.Request{Source: src, Target: target, PreserveAlpha: true})
			require.NoError(t, err)
			assert.Equal(t, want, res.Buffer.Size())
			assert.Equal(t, want.X*4, res.Buffer.Stride())
			assert.Zero(t, alloc.Live())
			c := res.Buffer.Image().At(want.X-1, want.Y-1).(color.NRGBA)
			// premultiplied decode loses a little precision at alpha 200
			assert.InDelta(t, 250, c.R, 3)
			assert.InDelta(t, 20, c.G, 3)
			assert.InDelta(t, 10, c.B, 3)
			assert.InDelta(t, 200, c.A, 2)
		})
	}
}

func TestImagingScaleEmptyRegion(t *testing.T) {
	src := &strided.Buffer{Data: make([]byte, 4), Width: 1, Height: 1, RowBytes: 4}
	assert.Error(t, strided.ImagingScale(&strided.Buffer{}, src))
	assert.Error(t, strided.RezScale(nil, src))
}
