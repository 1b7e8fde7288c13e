package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/qrgen/assets"
	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/pkg/filesystem"
	"github.com/doeshing/qrgen/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "QRGEN_CONFIG"

const backupTimeFormat = "20060102T150405"

// FileLoader loads YAML configuration from ~/.qrgen/config.yaml (overridable via QRGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path resolves through the environment.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := l.Save(cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".qrgen", "config.yaml")
}

// Save writes cfg, creating the config directory when needed.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return goerr.Wrap(err, "failed to create config directory", goerr.V("path", path))
	}
	if err := filesystem.WriteFileAtomic(path, raw, domain.SecureFilePermissions); err != nil {
		return goerr.Wrap(err, "failed to write config", goerr.V("path", path))
	}
	return nil
}

// Reset overwrites the config file with defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Backup copies the current config next to itself with a timestamp suffix.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read config for backup", goerr.V("path", path))
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format(backupTimeFormat))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", goerr.Wrap(err, "failed to write config backup", goerr.V("backup", backup))
	}
	return backup, nil
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return fallbackConfig()
	}
	return hydrateDefaults(cfg)
}

func fallbackConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Generation: domain.GenerationSettings{
			ErrorCorrection: string(domain.DefaultECCLevel),
			Foreground:      "black",
			Background:      "white",
		},
		Output: domain.OutputSettings{
			Directory:   ".",
			Format:      "png",
			JPEGQuality: domain.DefaultJPEGQuality,
		},
		History: domain.HistorySettings{
			Enabled: true,
			Backend: domain.HistoryBackendJSON,
			Path:    domain.DefaultHistoryFile,
		},
		Log: domain.LogSettings{Level: "info"},
	}
}

// hydrateDefaults fills fields an older or hand-edited file left blank.
// History.Enabled is left alone since false is a valid choice.
func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Generation.ErrorCorrection == "" {
		cfg.Generation.ErrorCorrection = string(domain.DefaultECCLevel)
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "."
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "png"
	}
	if cfg.Output.JPEGQuality == 0 {
		cfg.Output.JPEGQuality = domain.DefaultJPEGQuality
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendJSON
	}
	if cfg.History.Path == "" {
		cfg.History.Path = domain.DefaultHistoryFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
