package service

import (
	"encoding/binary"

	"go-image-quality/pkg/analyzer"
	"go-image-quality/pkg/models"
	"go-image-quality/pkg/pixel"
)

// ResolveOptions overlays request options on the service defaults
func ResolveOptions(base analyzer.AnalysisOptions, req *models.AnalysisOptionsRequest) (analyzer.AnalysisOptions, error) {
	options := base
	if req != nil {
		if req.BlurScale != nil {
			options = options.WithBlurScale(*req.BlurScale)
		}
		if req.NoiseMethod != "" {
			options = options.WithNoiseMethod(analyzer.NoiseMethod(req.NoiseMethod))
		}
		if req.StrictDimensions {
			options = options.WithStrictDimensions(true)
		}
		if req.Sequential {
			options.UseWorkerPool = false
			options.MaxWorkers = 1
		}
	}
	if err := options.Validate(); err != nil {
		return analyzer.AnalysisOptions{}, err
	}
	return options, nil
}

// RawImageFromRequest builds a RawImage from a raw analysis request
func RawImageFromRequest(req models.RawAnalysisRequest) (pixel.RawImage, error) {
	kind, err := pixel.ParseSampleKind(req.Sample)
	if err != nil {
		return pixel.RawImage{}, err
	}
	format, err := pixel.ParseFormat(req.Format)
	if err != nil {
		return pixel.RawImage{}, err
	}

	raw := pixel.RawImage{
		Kind:   kind,
		Data:   req.Data,
		Format: format,
		Width:  req.Width,
		Height: req.Height,
	}
	if req.BigEndian {
		raw.ByteOrder = binary.BigEndian
	}
	return raw, nil
}
