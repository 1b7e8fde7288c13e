package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/qrgen/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateGeneration(cfg.Generation); err != nil {
		return err
	}
	if err := validateOutput(cfg.Output); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateLog(cfg.Log); err != nil {
		return err
	}
	return nil
}

func validateGeneration(gen domain.GenerationSettings) error {
	if _, err := domain.ParseECCLevel(gen.ErrorCorrection); err != nil {
		return fmt.Errorf("generation.error_correction must be L|M|Q|H, got %s", gen.ErrorCorrection)
	}
	if gen.Foreground != "" {
		if _, err := domain.ParseColor(gen.Foreground); err != nil {
			return fmt.Errorf("generation.foreground invalid: %s", gen.Foreground)
		}
	}
	if gen.Background != "" {
		if _, err := domain.ParseColor(gen.Background); err != nil {
			return fmt.Errorf("generation.background invalid: %s", gen.Background)
		}
	}
	if gen.Version < 0 || gen.Version > domain.MaxVersion {
		return fmt.Errorf("generation.version must be 0 (auto) or 1-%d, got %d", domain.MaxVersion, gen.Version)
	}
	return nil
}

func validateOutput(out domain.OutputSettings) error {
	switch strings.ToLower(out.Format) {
	case "", "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("output.format must be png|jpg|jpeg, got %s", out.Format)
	}
	if out.JPEGQuality < 1 || out.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be 1-100, got %d", out.JPEGQuality)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch strings.ToLower(history.Backend) {
	case "", domain.HistoryBackendJSON, domain.HistoryBackendSQLite:
	default:
		return fmt.Errorf("history.backend must be json|sqlite, got %s", history.Backend)
	}
	if history.Enabled && strings.TrimSpace(history.Path) == "" {
		return errors.New("history.path must be set when history is enabled")
	}
	return nil
}

func validateLog(log domain.LogSettings) error {
	switch strings.ToLower(log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("log.level must be debug|info|warn|error, got %s", log.Level)
}
