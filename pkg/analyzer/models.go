package analyzer

import (
	"go-image-quality/pkg/models"
)

// AnalysisResult is an alias to the shared models.AnalysisResult
type AnalysisResult = models.AnalysisResult

// metrics holds the statistics engine results
type metrics struct {
	brightness        float64
	rmsContrast       float64
	michelsonContrast float64
}
