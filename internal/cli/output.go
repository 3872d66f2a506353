package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go-image-quality/pkg/models"
)

// printText writes one line per result followed by its quality issues
func printText(w io.Writer, source string, resp *models.ImageAnalysisResponse) {
	r := resp.Result
	fmt.Fprintf(w, "%s  %dx%d %s/%s\n", source, resp.Metadata.Width, resp.Metadata.Height,
		resp.Metadata.Format, resp.Metadata.SampleKind)
	fmt.Fprintf(w, "  brightness %.4f  rms %.4f  michelson %.4f  noise %.4f  sharpness %.4f  blur %.4f\n",
		r.Brightness, r.Contrast.RMS, r.Contrast.Michelson, r.Noise, r.Sharpness, r.Blur)
	for _, issue := range resp.Issues {
		fmt.Fprintf(w, "  %-7s %s (%.3f vs %.3f)\n", strings.ToUpper(issue.Severity), issue.Type, issue.ActualValue, issue.Threshold)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
