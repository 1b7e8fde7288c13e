// Package imagesaver writes rendered QR images to disk.
package imagesaver

import (
	"bufio"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/ports"
)

// Saver picks the format from the path extension and writes the file.
type Saver struct {
	encoder ports.RasterEncoder
}

// New builds a Saver on top of encoder.
func New(encoder ports.RasterEncoder) *Saver {
	return &Saver{encoder: encoder}
}

// FormatFor maps .jpg and .jpeg (any case) to JPEG and everything else to PNG.
func FormatFor(path string) domain.ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return domain.FormatJPEG
	default:
		return domain.FormatPNG
	}
}

// Save writes img to path, creating parent directories first. An existing
// file is overwritten. Failures are not retried.
func (s *Saver) Save(img image.Image, path string) error {
	if isNilImage(img) {
		return goerr.Wrap(domain.ErrArgument, "image cannot be nil")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return goerr.Wrap(domain.ErrIO, "failed to create output directory",
				goerr.V("dir", dir), goerr.V("cause", err.Error()))
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to open output file",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	w := bufio.NewWriter(file)
	if err := s.encoder.Encode(w, img, FormatFor(path)); err != nil {
		file.Close()
		return goerr.Wrap(domain.ErrIO, "failed to write image",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return goerr.Wrap(domain.ErrIO, "failed to flush image",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	if err := file.Close(); err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to close image file",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	return nil
}

// isNilImage also catches typed nil pointers such as (*domain.RenderedImage)(nil).
func isNilImage(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

var _ ports.ImageSaver = (*Saver)(nil)
