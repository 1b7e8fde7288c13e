package generate

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/application/validation"
	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/pkg/logger"
	"github.com/doeshing/qrgen/internal/ports"
)

// FormatResolver maps an output path to the image format the saver will use.
type FormatResolver func(path string) domain.ImageFormat

// Workflow runs validate -> generate -> save -> record.
type Workflow struct {
	Generator *Service
	Saver     ports.ImageSaver
	History   ports.HistoryRepository
	Format    FormatResolver
	// DefaultPath resolves the destination when the command has no Output.
	DefaultPath func(kind domain.PayloadKind) string
}

// Run executes cmd. The history record is written only after the image has
// been saved, and the payload recorded is the exact text that was encoded.
func (w *Workflow) Run(ctx context.Context, cmd domain.GenerateCommand) (domain.GenerateResult, error) {
	log := logger.From(ctx).With("kind", cmd.Kind)

	payload := cmd.Request.Text
	if err := validation.Validate(payload); err != nil {
		return domain.GenerateResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.GenerateResult{}, goerr.Wrap(err, "generation cancelled")
	}

	img, err := w.Generator.Generate(cmd.Request)
	if err != nil {
		return domain.GenerateResult{}, err
	}
	log.Debug("qr code rendered", "matrix", img.MatrixSize, "pixels", img.PixelSize())

	path := cmd.Output
	if path == "" && w.DefaultPath != nil {
		path = w.DefaultPath(cmd.Kind)
	}
	if path == "" {
		return domain.GenerateResult{}, goerr.Wrap(domain.ErrArgument, "no output path")
	}

	if err := ctx.Err(); err != nil {
		return domain.GenerateResult{}, goerr.Wrap(err, "generation cancelled")
	}

	if err := w.Saver.Save(img, path); err != nil {
		return domain.GenerateResult{}, err
	}

	result := domain.GenerateResult{
		Payload:   payload,
		Path:      path,
		PixelSize: img.PixelSize(),
		Image:     img,
	}
	if w.Format != nil {
		result.Format = w.Format(path)
	}
	if info, err := os.Stat(path); err == nil {
		result.Bytes = info.Size()
	}
	log.Info("qr code saved", "path", path, "bytes", result.Bytes)

	if cmd.NoHistory || w.History == nil {
		return result, nil
	}
	if err := w.History.Add(ctx, payload, path); err != nil {
		return result, goerr.Wrap(err, "image saved but history was not updated", goerr.V("path", path))
	}
	result.Recorded = true
	return result, nil
}
