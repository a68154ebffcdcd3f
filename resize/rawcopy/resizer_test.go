package rawcopy_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/resample/internal/testutil"
	"github.com/srlehn/resample/raster"
	"github.com/srlehn/resample/resize/rawcopy"
)

func paddedSource(t *testing.T, w, h, stride int, cs *raster.ColorSpace) *raster.SourceImage {
	t.Helper()
	buf, err := raster.Allocate(raster.Layout{Width: w, Height: h, Stride: stride, Format: raster.FormatNRGBA, ColorSpace: cs})
	require.NoError(t, err)
	m := buf.Image()
	g := testutil.Gradient(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, g.At(x, y))
		}
	}
	return raster.NewSourceBuffer(buf)
}

func TestResizeReplicatesLayout(t *testing.T) {
	src := paddedSource(t, 40, 30, 256, raster.DeviceRGB)
	res, err := (&rawcopy.Resizer{}).Resize(&raster.Request{Source: src, Target: raster.Size(20, 15), PreserveAlpha: true})
	require.NoError(t, err)
	buf := res.Buffer
	assert.Equal(t, image.Pt(20, 15), buf.Size())
	assert.Equal(t, 256, buf.Stride(), "source row stride is kept")
	assert.Equal(t, raster.FormatNRGBA, buf.Format())
	assert.Same(t, raster.DeviceRGB, buf.ColorSpace())
	assert.Equal(t, 256*15, buf.Len())
	assert.Equal(t, raster.RawBufferCopy, res.Algorithm)
}

func TestResizeWiderThanSourceStride(t *testing.T) {
	src := paddedSource(t, 10, 10, 48, raster.SRGB)
	res, err := (&rawcopy.Resizer{}).Resize(&raster.Request{Source: src, Target: raster.Size(30, 30), PreserveAlpha: true})
	require.NoError(t, err)
	assert.Equal(t, 30*4, res.Buffer.Stride())
	assert.Equal(t, res.Buffer.Stride()*res.Buffer.Height(), res.Buffer.Len())
}

func TestResizeDensity(t *testing.T) {
	src := raster.NewSourceBytes(testutil.PNG(t, 64, 64))
	res, err := (&rawcopy.Resizer{DeviceScale: 2}).Resize(&raster.Request{Source: src, Target: raster.Size(16, 8)})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 16), res.Buffer.Size())
	assert.Equal(t, 2.0, res.Scale)
	assert.Equal(t, raster.DensityDevice, res.Density)
	_, _, _, a := res.Buffer.Image().At(5, 15).RGBA()
	assert.Equal(t, uint32(0xffff), a, "alpha flattened")
}

func TestResizeUnsupportedColorSpace(t *testing.T) {
	src := paddedSource(t, 8, 8, 0, nil)
	res, err := (&rawcopy.Resizer{}).Resize(&raster.Request{Source: src, Target: raster.Size(4, 4)})
	assert.Nil(t, res)
	assert.Equal(t, raster.KindUnsupportedColorSpace, raster.KindOf(err))
}

func TestResizeDeterministic(t *testing.T) {
	src := raster.NewSourceBytes(testutil.PNG(t, 50, 50))
	req := &raster.Request{Source: src, Target: raster.Size(33, 17), PreserveAlpha: true}
	a, err := (&rawcopy.Resizer{}).Resize(req)
	require.NoError(t, err)
	b, err := (&rawcopy.Resizer{}).Resize(req)
	require.NoError(t, err)
	assert.Equal(t, a.Buffer.Size(), b.Buffer.Size())
	assert.Equal(t, a.Buffer.Data(), b.Buffer.Data())
}
