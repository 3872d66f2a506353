package cli

import (
	"fmt"
	"os"
	"runtime"

	"go-image-quality/internal/logger"

	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "quality",
	Short: "Measure brightness, contrast, noise and sharpness of images",
	Long: `quality scores images on brightness, RMS and Michelson contrast,
noise, Sobel sharpness and blur. Every score is a finite number and
all but sharpness lie in [0,1].

Images are read from files, directories (walked recursively),
http(s) URLs or raw pixel dumps.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetOutput(os.Stderr)
		logger.UseTextFormat()
		logger.SetLevel(logLevel)
		if verbose {
			logger.SetLevel("debug")
		}
	},
}

// Execute runs the root command and reports errors on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quality: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"quality %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
