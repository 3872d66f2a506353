package pixel

import (
	"encoding/binary"
	"image"

	"github.com/disintegration/imaging"
)

// FromImage flattens a decoded image into a RawImage without losing sample depth.
// Gray images map to FormatMono, everything else to non-premultiplied FormatRGBA.
func FromImage(img image.Image) RawImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		return RawImage{
			Kind:   SampleUint8,
			Data:   packRows(src.Pix, src.Stride, width, height, 1),
			Format: FormatMono,
			Width:  width,
			Height: height,
		}
	case *image.Gray16:
		return RawImage{
			Kind:      SampleUint16,
			Data:      packRows(src.Pix, src.Stride, width, height, 2),
			ByteOrder: binary.BigEndian,
			Format:    FormatMono,
			Width:     width,
			Height:    height,
		}
	case *image.NRGBA:
		return RawImage{
			Kind:   SampleUint8,
			Data:   packRows(src.Pix, src.Stride, width, height, 4),
			Format: FormatRGBA,
			Width:  width,
			Height: height,
		}
	case *image.NRGBA64:
		return RawImage{
			Kind:      SampleUint16,
			Data:      packRows(src.Pix, src.Stride, width, height, 8),
			ByteOrder: binary.BigEndian,
			Format:    FormatRGBA,
			Width:     width,
			Height:    height,
		}
	}

	// Premultiplied and paletted images are converted so alpha never scales color
	nrgba := imaging.Clone(img)
	return RawImage{
		Kind:   SampleUint8,
		Data:   packRows(nrgba.Pix, nrgba.Stride, width, height, 4),
		Format: FormatRGBA,
		Width:  width,
		Height: height,
	}
}

// packRows copies the visible rows of a strided plane into a tight buffer
func packRows(pix []byte, stride, width, height, bytesPerPixel int) []byte {
	rowBytes := width * bytesPerPixel
	out := make([]byte, 0, rowBytes*height)
	for y := 0; y < height; y++ {
		start := y * stride
		out = append(out, pix[start:start+rowBytes]...)
	}
	return out
}
