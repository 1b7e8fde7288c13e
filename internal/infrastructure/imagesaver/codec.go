package imagesaver

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/ports"
)

// Codec encodes images with the standard PNG and JPEG encoders.
type Codec struct {
	JPEGQuality int
}

// NewCodec returns a codec; quality outside 1..100 falls back to the default.
func NewCodec(jpegQuality int) *Codec {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = domain.DefaultJPEGQuality
	}
	return &Codec{JPEGQuality: jpegQuality}
}

// Encode implements ports.RasterEncoder.
func (c *Codec) Encode(w io.Writer, img image.Image, format domain.ImageFormat) error {
	switch format {
	case domain.FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: c.JPEGQuality}); err != nil {
			return goerr.Wrap(err, "failed to encode jpeg")
		}
	default:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(w, img); err != nil {
			return goerr.Wrap(err, "failed to encode png")
		}
	}
	return nil
}

var _ ports.RasterEncoder = (*Codec)(nil)
