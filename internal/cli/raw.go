package cli

import (
	"fmt"
	"os"

	"go-image-quality/internal/service"
	"go-image-quality/pkg/models"

	"github.com/spf13/cobra"
)

var (
	rawFlags     analysisFlags
	rawFormat    string
	rawSample    string
	rawWidth     int
	rawHeight    int
	rawBigEndian bool
)

var rawCmd = &cobra.Command{
	Use:   "raw <file>",
	Short: "Analyze an undecoded pixel dump",
	Long: `Reads interleaved samples from a file and analyzes them as a
width x height image. Multi-byte samples are little endian unless
--big-endian is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

func init() {
	rawFlags.register(rawCmd.Flags())
	rawCmd.Flags().StringVarP(&rawFormat, "format", "f", "RGBA", "pixel format (RGBA, RGB, MONO)")
	rawCmd.Flags().StringVarP(&rawSample, "sample", "s", "uint8", "sample type (uint8, uint16, uint32, float32, float64)")
	rawCmd.Flags().IntVar(&rawWidth, "width", 0, "image width in pixels")
	rawCmd.Flags().IntVar(&rawHeight, "height", 0, "image height in pixels")
	rawCmd.Flags().BoolVar(&rawBigEndian, "big-endian", false, "decode multi-byte samples as big endian")
	rawCmd.MarkFlagRequired("width")
	rawCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	opts, err := rawFlags.options()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	raw, err := service.RawImageFromRequest(models.RawAnalysisRequest{
		Data:      data,
		Sample:    rawSample,
		Format:    rawFormat,
		Width:     rawWidth,
		Height:    rawHeight,
		BigEndian: rawBigEndian,
	})
	if err != nil {
		return err
	}

	svc, err := newCLIService(opts, 0)
	if err != nil {
		return err
	}
	defer svc.Close()

	resp, err := svc.AnalyzeRaw(cmd.Context(), raw, opts)
	if err != nil {
		return err
	}

	if rawFlags.jsonOutput {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	printText(cmd.OutOrStdout(), args[0], resp)
	return nil
}
