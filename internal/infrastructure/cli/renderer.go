package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/qrgen/internal/domain"
)

// RenderResult prints a summary of a finished generation.
func RenderResult(out io.Writer, result domain.GenerateResult) {
	fmt.Fprintf(out, "Saved QR code to %s\n", result.Path)
	fmt.Fprintf(out, "Format: %s, %dx%d px, %s\n",
		strings.ToUpper(string(result.Format)), result.PixelSize, result.PixelSize, humanize.Bytes(uint64(result.Bytes)))
	fmt.Fprintf(out, "Payload: %s\n", result.Payload)
	if result.Recorded {
		fmt.Fprintln(out, "Recorded in history.")
	}
}

// RenderPreview draws the image with half-block characters, two module rows per line.
func RenderPreview(out io.Writer, img *domain.RenderedImage) {
	if img == nil || img.RGBA == nil {
		return
	}
	modules := img.MatrixSize + 2*domain.QuietZoneModules
	background := img.RGBAAt(0, 0)
	dark := func(row, col int) bool {
		if row >= modules {
			return false
		}
		center := domain.ModuleSize / 2
		return img.RGBAAt(col*domain.ModuleSize+center, row*domain.ModuleSize+center) != background
	}

	var b strings.Builder
	for row := 0; row < modules; row += 2 {
		for col := 0; col < modules; col++ {
			top, bottom := dark(row, col), dark(row+1, col)
			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprint(out, b.String())
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
