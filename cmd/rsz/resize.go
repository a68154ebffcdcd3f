package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/srlehn/resample/internal/encoder/encmulti"
	"github.com/srlehn/resample/internal/errors"
	"github.com/srlehn/resample/raster"
)

var (
	resizeAlgorithm     string
	resizeWidth         float64
	resizeHeight        float64
	resizeScale         float64
	resizeSourceScale   float64
	resizePreserveAlpha bool
	resizeOutput        string
)

func init() {
	resizeCmd.Flags().StringVarP(&resizeAlgorithm, `algorithm`, `a`, raster.ManualStridedScale.Name(), `resize algorithm`)
	sizeFlags(resizeCmd, &resizeWidth, &resizeHeight)
	resizeCmd.Flags().Float64Var(&resizeScale, `scale`, 0, `output density, 0 uses the device scale`)
	resizeCmd.Flags().Float64Var(&resizeSourceScale, `source-scale`, 1, `scale factor of the source image`)
	resizeCmd.Flags().BoolVar(&resizePreserveAlpha, `preserve-alpha`, true, `keep transparency, otherwise flatten onto black`)
	resizeCmd.Flags().StringVarP(&resizeOutput, `output`, `o`, ``, `output file, the extension selects the encoding`)
	serviceFlags(resizeCmd)
	rootCmd.AddCommand(resizeCmd)
}

var resizeCmd = &cobra.Command{
	Use:   resizeCmdStr + ` <image>`,
	Short: `resize an image`,
	Long: `resize an image

` + resizeUsageStr + `

algorithms: ` + algorithmList(),
	Args:             cobra.ExactArgs(1),
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error { return resizeFunc(cmd, args[0]) })
	},
}

var (
	resizeCmdStr   = `resize`
	resizeUsageStr = `usage: ` + os.Args[0] + ` ` + resizeCmdStr + ` -W <width> -H <height> (-a <algorithm>) (-o out.png) <image>`
)

func sizeFlags(cmd *cobra.Command, w, h *float64) {
	cmd.Flags().Float64VarP(w, `width`, `W`, 0, `target width in points`)
	cmd.Flags().Float64VarP(h, `height`, `H`, 0, `target height in points`)
}

func algorithmList() string {
	var s string
	for i, alg := range raster.Algorithms {
		if i > 0 {
			s += `, `
		}
		s += alg.Name()
	}
	return s
}

func resizeFunc(cmd *cobra.Command, arg string) error {
	alg, err := raster.ParseAlgorithm(resizeAlgorithm)
	if err != nil {
		return err
	}
	s, conf, err := newService(cmd)
	if err != nil {
		return err
	}
	src, err := openSource(arg, raster.WithScaleFactor(resizeSourceScale))
	if err != nil {
		return err
	}
	res, err := s.Do(&raster.Request{
		Source:        src,
		Target:        raster.Size(resizeWidth, resizeHeight),
		Algorithm:     alg,
		PreserveAlpha: resizePreserveAlpha,
		Scale:         resizeScale,
	})
	if err != nil {
		return err
	}
	if len(resizeOutput) > 0 {
		if err := writeResult(resizeOutput, res, conf.JPEGQuality); err != nil {
			return err
		}
	}
	fmt.Println(describe(res))
	return nil
}

func describe(res *raster.Result) string {
	buf := res.Buffer
	logical := res.LogicalSize()
	return fmt.Sprintf("%-20s %4dx%-4d stride %-5d %-8s %-8s scale %g (%gx%g pt)",
		res.Algorithm.String(),
		buf.Width(), buf.Height(), buf.Stride(),
		humanize.Bytes(uint64(buf.Len())),
		res.Density.String(),
		res.Scale, logical.Width, logical.Height)
}

func writeResult(fileName string, res *raster.Result, jpegQuality int) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.New(err)
	}
	defer func() {
		if errClose := f.Close(); errClose != nil && err == nil {
			err = errors.New(errClose)
		}
	}()
	enc := &encmulti.MultiEncoder{JPEGQuality: jpegQuality}
	return enc.Encode(f, res.Buffer.Image(), filepath.Ext(fileName))
}
