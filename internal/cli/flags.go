package cli

import (
	"go-image-quality/pkg/analyzer"

	"github.com/spf13/pflag"
)

// analysisFlags are shared by every command that runs the analyzer
type analysisFlags struct {
	workers     int
	blurScale   float64
	noiseMethod string
	strict      bool
	sequential  bool
	jsonOutput  bool
}

func (f *analysisFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "goroutines per analysis (0 = NumCPU)")
	fs.Float64Var(&f.blurScale, "blur-scale", analyzer.DefaultBlurScale, "sharpness at which blur is 0.5")
	fs.StringVar(&f.noiseMethod, "noise-method", string(analyzer.NoiseMethodImmerkaer), "noise estimator (immerkaer, local_deviation)")
	fs.BoolVar(&f.strict, "strict", false, "reject images smaller than 3x3 instead of scoring them")
	fs.BoolVar(&f.sequential, "sequential", false, "run estimators on a single goroutine")
	fs.BoolVar(&f.jsonOutput, "json", false, "print results as JSON")
}

// options validates the flags and converts them to analyzer options
func (f *analysisFlags) options() (analyzer.AnalysisOptions, error) {
	opts := analyzer.DefaultOptions().
		WithBlurScale(f.blurScale).
		WithNoiseMethod(analyzer.NoiseMethod(f.noiseMethod)).
		WithStrictDimensions(f.strict).
		WithMaxWorkers(f.workers)
	if f.sequential {
		opts.UseWorkerPool = false
		opts.MaxWorkers = 1
	}
	if err := opts.Validate(); err != nil {
		return analyzer.AnalysisOptions{}, err
	}
	return opts, nil
}
