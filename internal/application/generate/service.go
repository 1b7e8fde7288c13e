// Package generate turns validated text into QR raster images and runs the
// generate-save-record workflow.
package generate

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/ports"
)

// Service renders QR codes. It is a pure function of the request plus the encoder.
type Service struct {
	Encoder ports.QREncoder
}

// NewService builds a Service around encoder.
func NewService(encoder ports.QREncoder) *Service {
	return &Service{Encoder: encoder}
}

// Generate renders req as a raster image: each module is a
// domain.ModuleSize square of the foreground colour on the background, with
// one module of quiet zone around the matrix. The caller owns the image.
func (s *Service) Generate(req domain.GenerationRequest) (*domain.RenderedImage, error) {
	if req.Text == "" {
		return nil, goerr.Wrap(domain.ErrEncoding, "text cannot be empty")
	}
	if req.Version != nil && (*req.Version < domain.MinVersion || *req.Version > domain.MaxVersion) {
		return nil, goerr.Wrap(domain.ErrEncoding, "version out of range",
			goerr.V("version", *req.Version), goerr.V("min", domain.MinVersion), goerr.V("max", domain.MaxVersion))
	}

	level := req.Level
	if level == "" {
		level = domain.DefaultECCLevel
	}

	matrix, err := s.Encoder.Encode(req.Text, level, req.Version)
	if err != nil {
		return nil, goerr.Wrap(domain.ErrEncoding, err.Error(), goerr.V("level", level))
	}
	if len(matrix) == 0 {
		return nil, goerr.Wrap(domain.ErrEncoding, "encoder returned an empty matrix")
	}

	fg, bg := domain.Black, domain.White
	if req.Foreground != nil {
		fg = *req.Foreground
	}
	if req.Background != nil {
		bg = *req.Background
	}

	return Render(matrix, fg, bg), nil
}

// Render paints matrix at domain.ModuleSize pixels per module with the quiet zone.
func Render(matrix [][]bool, fg, bg domain.RGB) *domain.RenderedImage {
	size := len(matrix)
	out := &domain.RenderedImage{MatrixSize: size}
	side := out.PixelSize()
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(bg)}, image.Point{}, draw.Src)

	dark := &image.Uniform{C: toRGBA(fg)}
	offset := domain.QuietZoneModules * domain.ModuleSize
	for y, row := range matrix {
		for x, on := range row {
			if !on {
				continue
			}
			x0 := offset + x*domain.ModuleSize
			y0 := offset + y*domain.ModuleSize
			block := image.Rect(x0, y0, x0+domain.ModuleSize, y0+domain.ModuleSize)
			draw.Draw(img, block, dark, image.Point{}, draw.Src)
		}
	}

	out.RGBA = img
	return out
}

func toRGBA(c domain.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
