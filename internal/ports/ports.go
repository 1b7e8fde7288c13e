// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (validation, generation, history workflows) depends
// only on these interfaces. Concrete adapters live under internal/infrastructure:
// the QR encoder, the raster image codec, the history backends and the config
// loader.
package ports

import (
	"context"
	"image"
	"io"

	"github.com/doeshing/qrgen/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.qrgen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// QREncoder builds the module matrix for a payload.
// version nil picks the smallest version that fits; a non-nil version is
// forced and the call fails when the payload does not fit it.
type QREncoder interface {
	Encode(text string, level domain.ECCLevel, version *int) ([][]bool, error)
}

// RasterEncoder writes image bytes in the given format.
type RasterEncoder interface {
	Encode(w io.Writer, img image.Image, format domain.ImageFormat) error
}

// ImageSaver persists a rendered image to a path.
type ImageSaver interface {
	Save(img image.Image, path string) error
}

// HistoryRepository owns the persisted generation log.
// Every mutating call is a complete load-modify-save cycle.
type HistoryRepository interface {
	Load(ctx context.Context) (domain.HistoryLog, error)
	Save(ctx context.Context, log domain.HistoryLog) error
	Add(ctx context.Context, text, filePath string) error
	Path() string
}
