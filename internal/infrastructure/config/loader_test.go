package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/m-mizutani/gt"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	gt.Equal(t, cfg.ConfigFormatVersion, "1")
	gt.Equal(t, cfg.Generation.ErrorCorrection, "Q")
	gt.Equal(t, cfg.Generation.Foreground, "black")
	gt.Equal(t, cfg.Generation.Background, "white")
	gt.Equal(t, cfg.Generation.Version, 0)
	gt.Equal(t, cfg.Output.Directory, ".")
	gt.Equal(t, cfg.Output.Format, "png")
	gt.Equal(t, cfg.Output.JPEGQuality, 95)
	gt.True(t, cfg.History.Enabled)
	gt.Equal(t, cfg.History.Backend, domain.HistoryBackendJSON)
	gt.Equal(t, cfg.History.Path, domain.DefaultHistoryFile)
	gt.Equal(t, cfg.Log.Level, "info")
}

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := config.NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	gt.NoError(t, err)
	if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	gt.NoError(t, err)
	gt.Equal(t, info.Mode().Perm(), os.FileMode(domain.SecureFilePermissions))
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("generation:\n  error_correction: H\nhistory:\n  enabled: false\n"), 0o600))

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, cfg.Generation.ErrorCorrection, "H")
	gt.False(t, cfg.History.Enabled)
	gt.Equal(t, cfg.History.Path, domain.DefaultHistoryFile)
	gt.Equal(t, cfg.Output.JPEGQuality, domain.DefaultJPEGQuality)
	gt.Equal(t, cfg.Log.Level, "info")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("generation: [unterminated"), 0o600))

	_, err := config.NewFileLoader(path).Load(context.Background())
	gt.Error(t, err)
}

func TestPathFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(config.EnvConfigPath, path)

	gt.Equal(t, config.NewFileLoader("").Path(), path)

	override := filepath.Join(t.TempDir(), "flag.yaml")
	gt.Equal(t, config.NewFileLoader(override).Path(), override)
}

func TestSaveBackupReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := config.NewFileLoader(path)

	cfg := config.DefaultConfig()
	cfg.Output.Format = "jpg"
	gt.NoError(t, loader.Save(cfg))

	backup, err := loader.Backup()
	gt.NoError(t, err)
	gt.True(t, strings.HasSuffix(backup, ".bak"))
	raw, err := os.ReadFile(backup)
	gt.NoError(t, err)
	gt.S(t, string(raw)).Contains("format: jpg")

	reset, err := loader.Reset()
	gt.NoError(t, err)
	gt.Equal(t, reset.Output.Format, "png")

	loaded, err := loader.Load(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, loaded.Output.Format, "png")
}

func TestBackupWithoutFile(t *testing.T) {
	loader := config.NewFileLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := loader.Backup()
	gt.Error(t, err)
}
