package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/resample"
	"github.com/srlehn/resample/internal/testutil"
	"github.com/srlehn/resample/raster"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestLoadConfig(t *testing.T) {
	conf, err := loadConfig(``)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), conf)

	p := writeFile(t, `rsz.toml`, []byte("device_scale = 2.5\nfilter = \"box\"\nfast_thumbnails = true\njpeg_quality = 70\n"))
	conf, err = loadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, &config{DeviceScale: 2.5, Filter: `box`, FastThumbnails: true, JPEGQuality: 70}, conf)

	p = writeFile(t, `bad.toml`, []byte("devicescale = 2\n"))
	_, err = loadConfig(p)
	assert.ErrorContains(t, err, `devicescale`)

	_, err = loadConfig(filepath.Join(t.TempDir(), `missing.toml`))
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{}
	serviceFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{`--filter`, `nearest`, `--quality`, `50`}))
	conf := &config{DeviceScale: 3, Filter: `lanczos`}
	conf.applyFlags(cmd)
	assert.Equal(t, &config{DeviceScale: 3, Filter: `nearest`, JPEGQuality: 50}, conf)
}

func TestCompareAll(t *testing.T) {
	s, err := resample.New(defaultConfig().options())
	require.NoError(t, err)
	src := raster.NewSourceBytes(testutil.PNG(t, 64, 48))
	for _, jobs := range []int{0, 1, 2} {
		cmps := compareAll(s, src, raster.Size(32, 24), jobs)
		require.Len(t, cmps, len(raster.Algorithms))
		for i, c := range cmps {
			assert.Equal(t, raster.Algorithms[i], c.Algorithm)
			require.NoError(t, c.Err)
			assert.Equal(t, c.Algorithm, c.Result.Algorithm)
		}
	}
	for _, c := range compareAll(s, raster.NewSourceBytes(testutil.Garbage), raster.Size(8, 8), 0) {
		assert.Error(t, c.Err, c.Algorithm.Name())
	}
}

func TestOpenSource(t *testing.T) {
	p := writeFile(t, `img.png`, testutil.PNG(t, 5, 7))
	src, err := openSource(p)
	require.NoError(t, err)
	size, err := src.NativeSize()
	require.NoError(t, err)
	assert.Equal(t, 5, size.X)
	assert.Equal(t, 7, size.Y)

	_, err = openSource(`ftp://example.com/img.png`)
	assert.Equal(t, raster.KindSourceCreation, raster.KindOf(err))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, filepath.Join(`out`, `cat_lanczos.png`), outputName(`out`, `/tmp/cat.jpg`, raster.FilterGraphLanczos, `png`))
	assert.Equal(t, filepath.Join(`out`, `stdin_strided.jpg`), outputName(`out`, `-`, raster.ManualStridedScale, `jpg`))
}

func TestWriteResult(t *testing.T) {
	s, err := resample.New()
	require.NoError(t, err)
	res, err := s.Resize(raster.NewSourceBytes(testutil.PNG(t, 20, 20)), raster.Size(10, 10), raster.ContextCapture)
	require.NoError(t, err)
	for _, ext := range []string{`png`, `jpg`, `tiff`, `gif`} {
		p := filepath.Join(t.TempDir(), `out.`+ext)
		require.NoError(t, writeResult(p, res, 80), ext)
		src, err := raster.NewSourceFile(p)
		require.NoError(t, err)
		size, err := src.NativeSize()
		require.NoError(t, err, ext)
		assert.Equal(t, 10, size.X, ext)
	}
	assert.Error(t, writeResult(filepath.Join(t.TempDir(), `out.xyz`), res, 0))
	assert.Contains(t, describe(res), `ContextCapture`)
}
