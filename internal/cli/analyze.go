package cli

import (
	"fmt"
	"image"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go-image-quality/internal/logger"
	apperrors "go-image-quality/pkg/errors"
	"go-image-quality/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	analyzeFlags        analysisFlags
	analyzeMaxDimension int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path_or_url>...",
	Short: "Analyze image files, directories or URLs",
	Long: `Analyzes each argument. Directories are walked recursively and every
regular file is tried; files that do not decode as png, jpeg, gif, bmp,
tiff or webp are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeFlags.register(analyzeCmd.Flags())
	analyzeCmd.Flags().IntVar(&analyzeMaxDimension, "max-dimension", 0, "downscale images whose longer side exceeds this (0 = never)")
	rootCmd.AddCommand(analyzeCmd)
}

// target is one image to analyze. walked marks files found by directory traversal.
type target struct {
	display  string
	location string
	walked   bool
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts, err := analyzeFlags.options()
	if err != nil {
		return err
	}

	targets, err := collectTargets(args)
	if err != nil {
		return err
	}
	logger.WithField("count", len(targets)).Debug("Collected analysis targets")

	svc, err := newCLIService(opts, analyzeMaxDimension)
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	var results []*models.ImageAnalysisResponse
	failed := 0

	for _, t := range targets {
		resp, err := svc.AnalyzeImageURL(cmd.Context(), t.location, opts)
		if err != nil {
			if t.walked && apperrors.IsType(err, apperrors.ErrorTypeUnsupportedFormat) {
				logger.WithField("path", t.display).Debug("Skipping file that is not an image")
				continue
			}
			logger.WithError(err).WithField("source", t.display).Error("Analysis failed")
			failed++
			continue
		}

		if analyzeFlags.jsonOutput {
			results = append(results, resp)
		} else {
			printText(out, t.display, resp)
		}
	}

	if analyzeFlags.jsonOutput {
		if results == nil {
			results = []*models.ImageAnalysisResponse{}
		}
		if err := printJSON(out, results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(targets))
	}
	return nil
}

// collectTargets expands directories and converts paths to file URLs
func collectTargets(args []string) ([]target, error) {
	var targets []target
	for _, arg := range args {
		if strings.Contains(arg, "://") {
			targets = append(targets, target{display: arg, location: arg})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			loc, err := fileURL(arg)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target{display: arg, location: loc})
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.WithError(err).WithFields(logrus.Fields{"path": path}).Warn("Skipping unreadable entry")
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !decodable(path) {
				logger.WithField("path", path).Debug("Skipping file that is not an image")
				return nil
			}
			loc, err := fileURL(path)
			if err != nil {
				return err
			}
			targets = append(targets, target{display: path, location: loc, walked: true})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return targets, nil
}

// decodable reports whether the file header matches a registered image format
func decodable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
