package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/ports"
)

const smokeTestPayload = "qrgen"

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	Encoder        ports.QREncoder
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format version %s", cfg.ConfigFormatVersion)))

	checks = append(checks, s.historyCheck(ctx, cfg))
	checks = append(checks, outputDirCheck(cfg.Output.Directory))
	checks = append(checks, s.encoderCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) historyCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.History.Enabled {
		return warn("History", "disabled in config")
	}
	if s.History == nil {
		return warn("History", "history store not initialized")
	}
	path := s.History.Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ok("History", fmt.Sprintf("%s not created yet", path))
	}
	log, err := s.History.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptHistory):
		return fail("History", fmt.Sprintf("%s is corrupt: %v", path, err))
	case err != nil:
		return fail("History", err.Error())
	}
	return ok("History", fmt.Sprintf("%s (%d records)", path, len(log)))
}

func outputDirCheck(dir string) domain.HealthCheck {
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return warn("Output directory", fmt.Sprintf("%s does not exist, it will be created on first save", dir))
	}
	if err != nil {
		return fail("Output directory", err.Error())
	}
	if !info.IsDir() {
		return fail("Output directory", fmt.Sprintf("%s is not a directory", dir))
	}
	probe, err := os.CreateTemp(dir, ".qrgen-doctor-*")
	if err != nil {
		return fail("Output directory", fmt.Sprintf("%s is not writable: %v", dir, err))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Output directory", fmt.Sprintf("%s writable", dir))
}

func (s *Service) encoderCheck() domain.HealthCheck {
	if s.Encoder == nil {
		return fail("QR encoder", "encoder not initialized")
	}
	matrix, err := s.Encoder.Encode(smokeTestPayload, domain.ECCQuartile, nil)
	if err != nil {
		return fail("QR encoder", err.Error())
	}
	if len(matrix) != 21 {
		return fail("QR encoder", fmt.Sprintf("unexpected matrix size %d for %q", len(matrix), smokeTestPayload))
	}
	return ok("QR encoder", fmt.Sprintf("%q encoded to %dx%d modules", smokeTestPayload, len(matrix), len(matrix)))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
