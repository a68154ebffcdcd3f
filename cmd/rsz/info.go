package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
)

func init() { rootCmd.AddCommand(infoCmd) }

var infoCmd = &cobra.Command{
	Use:              `info <image>`,
	Short:            `print image properties`,
	Long:             "print image properties\n\nusage: " + os.Args[0] + ` info <image>`,
	Args:             cobra.ExactArgs(1),
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error { return infoFunc(args[0]) })
	},
}

func infoFunc(arg string) error {
	src, err := openSource(arg)
	if err != nil {
		return err
	}
	raw, err := src.RawBytes()
	if err != nil {
		return err
	}
	size, err := src.NativeSize()
	if err != nil {
		return err
	}
	fmt.Printf("type:        %s\n", mimetype.Detect(raw).String())
	fmt.Printf("encoded:     %s\n", humanize.Bytes(uint64(len(raw))))
	fmt.Printf("size:        %dx%d (pixels)\n", size.X, size.Y)
	fmt.Printf("decoded:     %s\n", humanize.Bytes(uint64(size.X)*uint64(size.Y)*4))
	fmt.Printf("orientation: %d\n", src.Orientation())
	return nil
}
