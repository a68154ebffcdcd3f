package ctxcapture_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/resample/internal/testutil"
	"github.com/srlehn/resample/raster"
	"github.com/srlehn/resample/resize/ctxcapture"
)

func TestResizeDensity(t *testing.T) {
	src := raster.NewSourceBytes(testutil.PNG(t, 90, 60))
	tests := map[string]struct {
		rsz      *ctxcapture.Resizer
		scale    float64
		wantSize image.Point
		wantSc   float64
	}{
		"ambient default": {&ctxcapture.Resizer{}, 0, image.Pt(30, 20), 1},
		"ambient 2x":      {&ctxcapture.Resizer{DeviceScale: 2}, 0, image.Pt(60, 40), 2},
		"explicit 3x":     {&ctxcapture.Resizer{DeviceScale: 2}, 3, image.Pt(90, 60), 3},
		"fractional":      {&ctxcapture.Resizer{}, 1.5, image.Pt(45, 30), 1.5},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := tc.rsz.Resize(&raster.Request{
				Source:        src,
				Target:        raster.Size(30, 20),
				PreserveAlpha: true,
				Scale:         tc.scale,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantSize, res.Buffer.Size())
			assert.Equal(t, tc.wantSc, res.Scale)
			assert.Equal(t, raster.DensityDevice, res.Density)
			assert.Equal(t, raster.Size(30, 20), res.LogicalSize())
			assert.Equal(t, res.Buffer.Stride()*res.Buffer.Height(), res.Buffer.Len())
		})
	}
}

func TestResizeOpaque(t *testing.T) {
	src := raster.NewSourceBytes(testutil.PNG(t, 40, 40))
	res, err := (&ctxcapture.Resizer{}).Resize(&raster.Request{Source: src, Target: raster.Size(20, 20)})
	require.NoError(t, err)
	data := res.Buffer.Data()
	for i := 3; i < len(data); i += 4 {
		require.Equal(t, byte(0xff), data[i], "pixel %d not opaque", i/4)
	}

	res, err = (&ctxcapture.Resizer{}).Resize(&raster.Request{Source: src, Target: raster.Size(20, 20), PreserveAlpha: true})
	require.NoError(t, err)
	// lower half of the fixture is semi transparent
	_, _, _, a := res.Buffer.Image().At(10, 18).RGBA()
	assert.Less(t, a, uint32(0xffff))
}

func TestResizeDeterministic(t *testing.T) {
	src := raster.NewSourceBytes(testutil.JPEG(t, 77, 33))
	req := &raster.Request{Source: src, Target: raster.Size(41.3, 19.7), PreserveAlpha: true}
	a, err := (&ctxcapture.Resizer{}).Resize(req)
	require.NoError(t, err)
	b, err := (&ctxcapture.Resizer{}).Resize(req)
	require.NoError(t, err)
	assert.Equal(t, a.Buffer.Size(), b.Buffer.Size())
	assert.Equal(t, a.Buffer.Data(), b.Buffer.Data())
	assert.NotSame(t, &a.Buffer.Data()[0], &b.Buffer.Data()[0], "each call allocates its own buffer")
}
