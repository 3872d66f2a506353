package pixel

import (
	"encoding/binary"
	"math"

	apperrors "go-image-quality/pkg/errors"
)

// RawImage is a pixel buffer whose sample type is only known at runtime.
// Multi-byte samples are decoded with ByteOrder, little endian when nil.
type RawImage struct {
	Kind      SampleKind
	Data      []byte
	ByteOrder binary.ByteOrder
	Format    Format
	Width     int
	Height    int
}

// Samples returns the number of whole samples in Data
func (r RawImage) Samples() int {
	size := r.Kind.Size()
	if size == 0 {
		return 0
	}
	return len(r.Data) / size
}

// Canonical decodes Data according to Kind and converts it with ToCanonical
func (r RawImage) Canonical() (*CanonicalImage, error) {
	size := r.Kind.Size()
	if size == 0 {
		return nil, apperrors.NewUnsupportedFormatError("unknown sample type")
	}
	expected, err := ExpectedSamples(r.Format, r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	if expected > math.MaxInt/size {
		return nil, apperrors.NewInvalidDimensionsError("image dimensions overflow the buffer length", r.Width, r.Height)
	}
	if len(r.Data)%size != 0 || len(r.Data)/size != expected {
		return nil, apperrors.NewInvalidBufferSizeError(expected*size, len(r.Data))
	}

	order := r.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}

	switch r.Kind {
	case SampleUint8:
		return ToCanonical(r.Data, r.Format, r.Width, r.Height)
	case SampleUint16:
		return ToCanonical(decodeSamples(r.Data, 2, order.Uint16), r.Format, r.Width, r.Height)
	case SampleUint32:
		return ToCanonical(decodeSamples(r.Data, 4, order.Uint32), r.Format, r.Width, r.Height)
	case SampleFloat32:
		return ToCanonical(decodeSamples(r.Data, 4, func(b []byte) float32 {
			return math.Float32frombits(order.Uint32(b))
		}), r.Format, r.Width, r.Height)
	case SampleFloat64:
		return ToCanonical(decodeSamples(r.Data, 8, func(b []byte) float64 {
			return math.Float64frombits(order.Uint64(b))
		}), r.Format, r.Width, r.Height)
	}
	return nil, apperrors.NewUnsupportedFormatError("unknown sample type")
}

func decodeSamples[T Sample](data []byte, size int, read func([]byte) T) []T {
	out := make([]T, len(data)/size)
	for i := range out {
		out[i] = read(data[i*size : i*size+size])
	}
	return out
}

// EncodeSamples packs typed samples into a RawImage using little endian byte order
func EncodeSamples[T Sample](buf []T, format Format, width, height int) RawImage {
	raw := RawImage{Format: format, Width: width, Height: height, ByteOrder: binary.LittleEndian}
	switch b := any(buf).(type) {
	case []uint8:
		raw.Kind = SampleUint8
		raw.Data = append([]byte(nil), b...)
	case []uint16:
		raw.Kind = SampleUint16
		raw.Data = make([]byte, 0, len(b)*2)
		for _, v := range b {
			raw.Data = binary.LittleEndian.AppendUint16(raw.Data, v)
		}
	case []uint32:
		raw.Kind = SampleUint32
		raw.Data = make([]byte, 0, len(b)*4)
		for _, v := range b {
			raw.Data = binary.LittleEndian.AppendUint32(raw.Data, v)
		}
	case []float32:
		raw.Kind = SampleFloat32
		raw.Data = make([]byte, 0, len(b)*4)
		for _, v := range b {
			raw.Data = binary.LittleEndian.AppendUint32(raw.Data, math.Float32bits(v))
		}
	case []float64:
		raw.Kind = SampleFloat64
		raw.Data = make([]byte, 0, len(b)*8)
		for _, v := range b {
			raw.Data = binary.LittleEndian.AppendUint64(raw.Data, math.Float64bits(v))
		}
	}
	return raw
}
