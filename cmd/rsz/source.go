package main

import (
	"os"
	"path/filepath"

	"github.com/srlehn/resample/raster"
)

// openSource reads a file path, a file:// or http(s):// URL or stdin for "-".
func openSource(arg string, opts ...raster.SourceOption) (*raster.SourceImage, error) {
	if arg == `-` {
		return raster.NewSourceReader(os.Stdin, opts...)
	}
	if _, err := os.Stat(arg); err == nil {
		return raster.NewSourceFile(arg, opts...)
	}
	return raster.NewSourceURL(arg, opts...)
}

// outputName derives the per algorithm file name in dir.
func outputName(dir, source string, alg raster.Algorithm, ext string) string {
	base := filepath.Base(source)
	if base == `-` || base == `.` || base == string(filepath.Separator) {
		base = `stdin`
	}
	base = base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(dir, base+`_`+alg.Name()+`.`+ext)
}
