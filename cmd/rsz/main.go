package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/srlehn/resample"
	"github.com/srlehn/resample/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:              filepath.Base(os.Args[0]),
	Short:            "rsz resize images with interchangeable strategies",
	Long:             "rsz resize images with interchangeable strategies",
	SilenceUsage:     true,
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, `debug`, `d`, false, `debug errors, log at debug level`)
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, `silent`, `s`, false, `silence errors`)
	rootCmd.PersistentFlags().StringVarP(&configFlag, `config`, `c`, ``, `toml config file`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	debugFlag      bool
	silentFlag     bool
	configFlag     string
	cpuProfileFlag string
	cpuProfilefunc func(profileFile string) func()
)

func newLogger() *slog.Logger {
	if !debugFlag {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newService builds the service from the config file and the flags
// changed on cmd.
func newService(cmd *cobra.Command) (*resample.Service, *config, error) {
	conf, err := loadConfig(configFlag)
	if err != nil {
		return nil, nil, err
	}
	conf.applyFlags(cmd)
	s, err := resample.New(conf.options(), resample.SetLogger(newLogger()))
	if err != nil {
		return nil, nil, err
	}
	return s, conf, nil
}

func run(fn func() error) {
	var err error
	var exitCode int
	defer func() {
		if r := recover(); r != nil {
			exitCode = 1
			if !silentFlag {
				if stackFramer, ok := r.(interface{ ErrorStack() string }); ok {
					fmt.Fprintln(os.Stderr, "\n"+stackFramer.ErrorStack())
				} else {
					debug.PrintStack()
				}
			}
		}
		os.Exit(exitCode)
	}()
	if len(cpuProfileFlag) > 0 && cpuProfilefunc != nil {
		if stop := cpuProfilefunc(cpuProfileFlag); stop != nil {
			defer stop()
		}
	}
	if fn == nil {
		err = errors.NilParam()
	} else {
		err = fn()
	}
	if err != nil {
		exitCode = 1
		if !silentFlag {
			if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
				fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
			} else {
				fmt.Fprintln(os.Stderr, err.Error())
			}
		}
	}
}
