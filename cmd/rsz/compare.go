package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/srlehn/resample"
	"github.com/srlehn/resample/internal/errors"
	"github.com/srlehn/resample/raster"
)

var (
	compareWidth  float64
	compareHeight float64
	compareJobs   int
	compareDir    string
	compareFormat string
)

func init() {
	sizeFlags(compareCmd, &compareWidth, &compareHeight)
	compareCmd.Flags().IntVarP(&compareJobs, `jobs`, `j`, 0, `concurrent resizes, 0 runs all at once`)
	compareCmd.Flags().StringVar(&compareDir, `out-dir`, ``, `write every result into this directory`)
	compareCmd.Flags().StringVar(&compareFormat, `format`, `png`, `encoding of the written results`)
	serviceFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   `compare <image>`,
	Short: `resize an image with every algorithm`,
	Long: `resize an image with every algorithm

usage: ` + os.Args[0] + ` compare -W <width> -H <height> (-j <jobs>) (--out-dir <dir>) <image>`,
	Args:             cobra.ExactArgs(1),
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error { return compareFunc(cmd, args[0]) })
	},
}

type comparison struct {
	Algorithm raster.Algorithm
	Result    *raster.Result
	Err       error
}

// compareAll resizes src once per algorithm, sharing the decode cache.
// Failures are kept per algorithm, they don't cancel the others.
func compareAll(s *resample.Service, src *raster.SourceImage, target raster.TargetSize, jobs int) []comparison {
	cmps := make([]comparison, len(raster.Algorithms))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, alg := range raster.Algorithms {
		i, alg := i, alg
		g.Go(func() error {
			res, err := s.Resize(src, target, alg)
			cmps[i] = comparison{Algorithm: alg, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return cmps
}

func compareFunc(cmd *cobra.Command, arg string) error {
	s, conf, err := newService(cmd)
	if err != nil {
		return err
	}
	src, err := openSource(arg)
	if err != nil {
		return err
	}
	var failed int
	cmps := compareAll(s, src, raster.Size(compareWidth, compareHeight), compareJobs)
	var g errgroup.Group
	for _, c := range cmps {
		if c.Err != nil {
			fmt.Printf("%-20s %v\n", c.Algorithm.String(), c.Err)
			failed++
			continue
		}
		fmt.Println(describe(c.Result))
		if len(compareDir) == 0 {
			continue
		}
		c := c
		g.Go(func() error {
			return writeResult(outputName(compareDir, arg, c.Algorithm, compareFormat), c.Result, conf.JPEGQuality)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf(`%d of %d algorithms failed`, failed, len(cmps))
	}
	return nil
}
