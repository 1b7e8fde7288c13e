package domain

// Config mirrors ~/.qrgen/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Generation          GenerationSettings `yaml:"generation"`
	Output              OutputSettings     `yaml:"output"`
	History             HistorySettings    `yaml:"history"`
	Log                 LogSettings        `yaml:"log"`
}

// GenerationSettings are the defaults applied when flags are omitted.
type GenerationSettings struct {
	ErrorCorrection string `yaml:"error_correction"`
	Foreground      string `yaml:"foreground"`
	Background      string `yaml:"background"`
	// Version 0 picks the smallest version that fits.
	Version int `yaml:"version"`
}

// OutputSettings controls where images land.
type OutputSettings struct {
	Directory   string `yaml:"directory"`
	Format      string `yaml:"format"`
	JPEGQuality int    `yaml:"jpeg_quality"`
}

// HistorySettings selects the history backend.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `yaml:"level"`
}
