package pixel

import (
	"strings"

	apperrors "go-image-quality/pkg/errors"
)

// Sample is the set of element types a pixel buffer may hold.
// Adding an unsigned width requires a matching case in Divisor.
type Sample interface {
	float32 | float64 | uint8 | uint16 | uint32
}

// Divisor returns the value that maps a sample of type T onto [0,1].
// Floating point samples are taken as already normalized.
func Divisor[T Sample]() float64 {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return 1
	case uint8:
		return 1<<8 - 1
	case uint16:
		return 1<<16 - 1
	case uint32:
		return 1<<32 - 1
	}
	panic("pixel: unreachable sample type")
}

// SampleKind identifies a sample representation at runtime, for buffers that
// arrive as bytes (HTTP payloads, decoded image planes).
type SampleKind uint8

const (
	SampleUint8 SampleKind = iota
	SampleUint16
	SampleUint32
	SampleFloat32
	SampleFloat64
)

// Size returns the width of one sample in bytes, or 0 for an unknown kind
func (k SampleKind) Size() int {
	switch k {
	case SampleUint8:
		return 1
	case SampleUint16:
		return 2
	case SampleUint32, SampleFloat32:
		return 4
	case SampleFloat64:
		return 8
	}
	return 0
}

// Divisor returns the normalization divisor for k, mirroring Divisor[T]
func (k SampleKind) Divisor() float64 {
	switch k {
	case SampleUint8:
		return Divisor[uint8]()
	case SampleUint16:
		return Divisor[uint16]()
	case SampleUint32:
		return Divisor[uint32]()
	case SampleFloat32:
		return Divisor[float32]()
	case SampleFloat64:
		return Divisor[float64]()
	}
	return 0
}

func (k SampleKind) String() string {
	switch k {
	case SampleUint8:
		return "uint8"
	case SampleUint16:
		return "uint16"
	case SampleUint32:
		return "uint32"
	case SampleFloat32:
		return "float32"
	case SampleFloat64:
		return "float64"
	}
	return "unknown"
}

// ParseSampleKind maps a sample type name to a SampleKind
func ParseSampleKind(name string) (SampleKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uint8", "u8", "byte":
		return SampleUint8, nil
	case "uint16", "u16":
		return SampleUint16, nil
	case "uint32", "u32":
		return SampleUint32, nil
	case "float32", "f32", "float":
		return SampleFloat32, nil
	case "float64", "f64", "double":
		return SampleFloat64, nil
	}
	return 0, apperrors.NewUnsupportedFormatError("unknown sample type " + name)
}
