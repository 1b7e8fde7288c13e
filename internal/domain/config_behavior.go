package domain

import (
	"path/filepath"
	"strings"
)

// Level returns the configured error-correction level.
func (c Config) Level() (ECCLevel, error) {
	return ParseECCLevel(c.Generation.ErrorCorrection)
}

// Colors returns the configured foreground and background.
func (c Config) Colors() (fg RGB, bg RGB, err error) {
	fg, bg = Black, White
	if c.Generation.Foreground != "" {
		if fg, err = ParseColor(c.Generation.Foreground); err != nil {
			return RGB{}, RGB{}, err
		}
	}
	if c.Generation.Background != "" {
		if bg, err = ParseColor(c.Generation.Background); err != nil {
			return RGB{}, RGB{}, err
		}
	}
	return fg, bg, nil
}

// OutputFormat returns the configured default image format.
func (c Config) OutputFormat() ImageFormat {
	switch strings.ToLower(c.Output.Format) {
	case "jpg", "jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}

// DefaultOutputPath joins the output directory with name and the default extension.
func (c Config) DefaultOutputPath(name string) string {
	dir := c.Output.Directory
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+c.OutputFormat().Extension())
}

// HistoryPath returns the history document path, falling back to the default file.
func (c Config) HistoryPath() string {
	if c.History.Path == "" {
		return DefaultHistoryFile
	}
	return c.History.Path
}
