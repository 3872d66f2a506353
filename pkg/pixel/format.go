package pixel

import (
	"strings"

	apperrors "go-image-quality/pkg/errors"
)

// Format is the channel layout of a pixel buffer
type Format uint8

const (
	FormatRGBA Format = iota
	FormatRGB
	FormatMono
)

// ChannelCount returns the number of interleaved samples per pixel, or 0 for an unknown format
func (f Format) ChannelCount() int {
	switch f {
	case FormatRGBA:
		return 4
	case FormatRGB:
		return 3
	case FormatMono:
		return 1
	}
	return 0
}

// Valid reports whether f is one of the known layouts
func (f Format) Valid() bool {
	return f.ChannelCount() != 0
}

func (f Format) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatRGB:
		return "RGB"
	case FormatMono:
		return "MONO"
	}
	return "UNKNOWN"
}

// ParseFormat maps a layout name (case-insensitive) to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RGBA":
		return FormatRGBA, nil
	case "RGB":
		return FormatRGB, nil
	case "MONO", "GRAY", "GREY":
		return FormatMono, nil
	}
	return 0, apperrors.NewUnsupportedFormatError("unknown pixel format " + name)
}

// MarshalText implements encoding.TextMarshaler
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, apperrors.NewUnsupportedFormatError("unknown pixel format")
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
