package main

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/srlehn/resample"
	"github.com/srlehn/resample/internal/consts"
	"github.com/srlehn/resample/internal/errors"
)

// config is the toml file layout, flags override it.
//
//	device_scale = 2.0
//	filter = "lanczos"
//	fast_thumbnails = false
//	jpeg_quality = 85
type config struct {
	DeviceScale    float64 `toml:"device_scale"`
	Filter         string  `toml:"filter"`
	FastThumbnails bool    `toml:"fast_thumbnails"`
	JPEGQuality    int     `toml:"jpeg_quality"`
}

func defaultConfig() *config {
	return &config{
		DeviceScale: consts.DefaultDeviceScale,
		Filter:      consts.DefaultFilterName,
	}
}

func loadConfig(path string) (*config, error) {
	conf := defaultConfig()
	if len(path) == 0 {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, errors.New(err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(`unknown config key "` + undec[0].String() + `" in ` + path)
	}
	return conf, nil
}

// applyFlags copies the service flags the user set explicitly.
func (c *config) applyFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	flags := cmd.Flags()
	if flags.Changed(`device-scale`) {
		c.DeviceScale, _ = flags.GetFloat64(`device-scale`)
	}
	if flags.Changed(`filter`) {
		c.Filter, _ = flags.GetString(`filter`)
	}
	if flags.Changed(`fast`) {
		c.FastThumbnails, _ = flags.GetBool(`fast`)
	}
	if flags.Changed(`quality`) {
		c.JPEGQuality, _ = flags.GetInt(`quality`)
	}
}

func (c *config) options() resample.Options {
	return resample.Options{
		resample.SetDeviceScale(c.DeviceScale),
		resample.SetFilterName(c.Filter),
		resample.SetFastThumbnails(c.FastThumbnails),
	}
}

// serviceFlags registers the flags read by applyFlags.
func serviceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64(`device-scale`, consts.DefaultDeviceScale, `ambient output density`)
	cmd.Flags().String(`filter`, consts.DefaultFilterName, `FilterGraphLanczos resampling filter`)
	cmd.Flags().Bool(`fast`, false, `bilinear CodecThumbnail downsampling`)
	cmd.Flags().Int(`quality`, 0, `jpeg output quality`)
}
