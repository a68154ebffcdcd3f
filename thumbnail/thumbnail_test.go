package thumbnail_test

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/resample/internal/testutil"
	"github.com/srlehn/resample/raster"
	"github.com/srlehn/resample/thumbnail"
)

func TestSize(t *testing.T) {
	tests := map[string]struct {
		native image.Point
		max    int
		want   image.Point
	}{
		"landscape clamp": {image.Pt(1600, 1200), 800, image.Pt(800, 600)},
		"portrait clamp":  {image.Pt(1200, 1600), 800, image.Pt(600, 800)},
		"square":          {image.Pt(1000, 1000), 10, image.Pt(10, 10)},
		"no upscale":      {image.Pt(700, 500), 800, image.Pt(700, 500)},
		"exact":           {image.Pt(800, 600), 800, image.Pt(800, 600)},
		"thin edge":       {image.Pt(4000, 2), 100, image.Pt(100, 1)},
		"empty":           {image.Pt(0, 10), 100, image.Point{}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, thumbnail.Size(tc.native, tc.max))
		})
	}
}

func TestDecodeBytes(t *testing.T) {
	dec := &thumbnail.Decoder{MaxPixelSize: 80}
	buf, err := dec.DecodeBytes(testutil.PNG(t, 160, 120))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(80, 60), buf.Size())
	assert.Equal(t, buf.Stride()*buf.Height(), buf.Len())

	buf, err = (&thumbnail.Decoder{MaxPixelSize: 80, Interpolation: thumbnail.Bilinear}).Decode(bytes.NewReader(testutil.JPEG(t, 120, 160)))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(60, 80), buf.Size())
}

func TestDecodeFile(t *testing.T) {
	imgFile := filepath.Join(t.TempDir(), `img.png`)
	require.NoError(t, os.WriteFile(imgFile, testutil.PNG(t, 50, 20), 0o600))
	buf, err := (&thumbnail.Decoder{MaxPixelSize: 25}).DecodeFile(imgFile)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(25, 10), buf.Size())
}

func TestDecodeErrors(t *testing.T) {
	dec := &thumbnail.Decoder{MaxPixelSize: 32}
	_, err := dec.DecodeBytes(testutil.Garbage)
	assert.Equal(t, raster.KindSourceCreation, raster.KindOf(err))

	_, err = dec.DecodeBytes(nil)
	assert.Equal(t, raster.KindSourceCreation, raster.KindOf(err))

	_, err = dec.DecodeBytes(testutil.Truncated(testutil.PNG(t, 64, 64)))
	assert.Equal(t, raster.KindDecode, raster.KindOf(err))

	_, err = (&thumbnail.Decoder{}).DecodeBytes(testutil.PNG(t, 4, 4))
	assert.Equal(t, raster.KindInvalidTarget, raster.KindOf(err))
}

func TestInterpolations(t *testing.T) {
	data := testutil.PNG(t, 90, 30)
	for _, interp := range []thumbnail.Interpolation{thumbnail.Lanczos3, thumbnail.Bicubic, thumbnail.Bilinear, thumbnail.NearestNeighbor} {
		buf, err := (&thumbnail.Decoder{MaxPixelSize: 45, Interpolation: interp}).DecodeBytes(data)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(45, 15), buf.Size())
	}
}
