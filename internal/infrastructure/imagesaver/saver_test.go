package imagesaver_test

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/doeshing/qrgen/internal/application/generate"
	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/imagesaver"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

func testImage() *domain.RenderedImage {
	return generate.Render([][]bool{{true, false}, {false, true}}, domain.Black, domain.White)
}

func newSaver() *imagesaver.Saver {
	return imagesaver.New(imagesaver.NewCodec(0))
}

func TestFormatFor(t *testing.T) {
	tests := map[string]domain.ImageFormat{
		"out.jpg":        domain.FormatJPEG,
		"out.JPG":        domain.FormatJPEG,
		"out.jpeg":       domain.FormatJPEG,
		"dir/out.JpEg":   domain.FormatJPEG,
		"out.png":        domain.FormatPNG,
		"out":            domain.FormatPNG,
		"out.gif":        domain.FormatPNG,
		"archive.jpg.gz": domain.FormatPNG,
		"":               domain.FormatPNG,
	}
	for path, want := range tests {
		gt.Equal(t, imagesaver.FormatFor(path), want)
	}
}

func TestSaveFormats(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		magic []byte
	}{
		{name: "jpg", file: "out.jpg", magic: jpegMagic},
		{name: "jpeg upper", file: "out.JPEG", magic: jpegMagic},
		{name: "png", file: "out.png", magic: pngMagic},
		{name: "no extension", file: "out", magic: pngMagic},
		{name: "other extension", file: "out.bmp", magic: pngMagic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			gt.NoError(t, newSaver().Save(testImage(), path))

			data, err := os.ReadFile(path)
			gt.NoError(t, err)
			gt.True(t, bytes.HasPrefix(data, tt.magic))
		})
	}
}

func TestSaveDecodesBack(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	pngPath := filepath.Join(dir, "a.png")
	gt.NoError(t, newSaver().Save(img, pngPath))
	f, err := os.Open(pngPath)
	gt.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	gt.NoError(t, err)
	gt.Equal(t, decoded.Bounds(), image.Rect(0, 0, 80, 80))

	jpgPath := filepath.Join(dir, "a.jpg")
	gt.NoError(t, newSaver().Save(img, jpgPath))
	j, err := os.Open(jpgPath)
	gt.NoError(t, err)
	defer j.Close()
	cfg, err := jpeg.DecodeConfig(j)
	gt.NoError(t, err)
	gt.Equal(t, cfg.Width, 80)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "qr.png")
	gt.NoError(t, newSaver().Save(testImage(), path))
	_, err := os.Stat(path)
	gt.NoError(t, err)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr.png")
	gt.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))
	gt.NoError(t, newSaver().Save(testImage(), path))

	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSaveNilImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr.png")

	err := newSaver().Save(nil, path)
	gt.True(t, errors.Is(err, domain.ErrArgument))

	var rendered *domain.RenderedImage
	err = newSaver().Save(rendered, path)
	gt.True(t, errors.Is(err, domain.ErrArgument))

	_, statErr := os.Stat(path)
	gt.True(t, os.IsNotExist(statErr))
}

func TestSaveIOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	gt.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// parent "directory" is a regular file
	err := newSaver().Save(testImage(), filepath.Join(blocker, "qr.png"))
	gt.True(t, errors.Is(err, domain.ErrIO))
}
