package models

// AnalysisOptionsRequest carries optional analyzer settings in a request body
type AnalysisOptionsRequest struct {
	BlurScale        *float64 `json:"blur_scale,omitempty"`
	NoiseMethod      string   `json:"noise_method,omitempty"`
	StrictDimensions bool     `json:"strict_dimensions,omitempty"`
	Sequential       bool     `json:"sequential,omitempty"`
}

// AnalysisRequest asks the service to fetch and analyze the image at URL
type AnalysisRequest struct {
	URL     string                  `json:"url" binding:"required"`
	Options *AnalysisOptionsRequest `json:"options,omitempty"`
}

// RawAnalysisRequest carries an already decoded pixel buffer.
// Data is base64 in JSON; multi-byte samples are little endian unless BigEndian is set.
type RawAnalysisRequest struct {
	Data      []byte                  `json:"data" binding:"required"`
	Sample    string                  `json:"sample" binding:"required"`
	Format    string                  `json:"format" binding:"required"`
	Width     int                     `json:"width"`
	Height    int                     `json:"height"`
	BigEndian bool                    `json:"big_endian,omitempty"`
	Options   *AnalysisOptionsRequest `json:"options,omitempty"`
}

// AnalysisHistoryResponse lists the retained analyses of one source, newest first
type AnalysisHistoryResponse struct {
	Source   string                   `json:"source"`
	Analyses []*ImageAnalysisResponse `json:"analyses"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}
