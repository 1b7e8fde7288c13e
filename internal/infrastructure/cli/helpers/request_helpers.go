package helpers

import (
	"github.com/doeshing/qrgen/internal/domain"
)

// GenerationFlags are the per-command overrides for configured generation defaults.
type GenerationFlags struct {
	ErrorCorrection string
	Foreground      string
	Background      string
	// Version 0 defers to config.
	Version int
}

// BuildRequest merges flags over cfg into a request for text.
func BuildRequest(cfg domain.Config, text string, flags GenerationFlags) (domain.GenerationRequest, error) {
	req := domain.GenerationRequest{Text: text}

	levelName := cfg.Generation.ErrorCorrection
	if flags.ErrorCorrection != "" {
		levelName = flags.ErrorCorrection
	}
	level, err := domain.ParseECCLevel(levelName)
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	req.Level = level

	fg, bg, err := cfg.Colors()
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	if flags.Foreground != "" {
		if fg, err = domain.ParseColor(flags.Foreground); err != nil {
			return domain.GenerationRequest{}, err
		}
	}
	if flags.Background != "" {
		if bg, err = domain.ParseColor(flags.Background); err != nil {
			return domain.GenerationRequest{}, err
		}
	}
	req.Foreground, req.Background = &fg, &bg

	version := cfg.Generation.Version
	if flags.Version != 0 {
		version = flags.Version
	}
	if version != 0 {
		req.Version = &version
	}
	return req, nil
}
