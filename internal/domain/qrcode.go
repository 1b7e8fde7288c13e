package domain

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/colornames"
)

// ECCLevel is one of the four QR error-correction tiers.
type ECCLevel string

const (
	ECCLow      ECCLevel = "L"
	ECCMedium   ECCLevel = "M"
	ECCQuartile ECCLevel = "Q"
	ECCHigh     ECCLevel = "H"
)

// ParseECCLevel accepts L, M, Q or H in any case. Empty input yields the default level.
func ParseECCLevel(s string) (ECCLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultECCLevel, nil
	case "L":
		return ECCLow, nil
	case "M":
		return ECCMedium, nil
	case "Q":
		return ECCQuartile, nil
	case "H":
		return ECCHigh, nil
	}
	return "", goerr.Wrap(ErrValidation, "unknown error correction level", goerr.V("level", s))
}

// RGB is an opaque colour.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex renders the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts #rrggbb, #rgb or an SVG colour name such as "navy".
func ParseColor(s string) (RGB, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return RGB{}, goerr.Wrap(ErrValidation, "colour is empty")
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	named, ok := colornames.Map[value]
	if !ok {
		return RGB{}, goerr.Wrap(ErrValidation, "unknown colour name", goerr.V("colour", s))
	}
	return RGB{R: named.R, G: named.G, B: named.B}, nil
}

func parseHexColor(value string) (RGB, error) {
	digits := value[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return RGB{}, goerr.Wrap(ErrValidation, "hex colour must be #rgb or #rrggbb", goerr.V("colour", value))
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, goerr.Wrap(ErrValidation, "invalid hex colour", goerr.V("colour", value))
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// GenerationRequest carries everything needed to render one QR code.
// Version, Foreground and Background are optional.
type GenerationRequest struct {
	Text       string
	Level      ECCLevel
	Version    *int
	Foreground *RGB
	Background *RGB
}

// RenderedImage is a rasterised QR code owned by the caller.
type RenderedImage struct {
	*image.RGBA
	// MatrixSize is the side length of the module matrix, without quiet zone.
	MatrixSize int
}

// PixelSize is the side length of the image in pixels.
func (r *RenderedImage) PixelSize() int {
	return (r.MatrixSize + 2*QuietZoneModules) * ModuleSize
}
