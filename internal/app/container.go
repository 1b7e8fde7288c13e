package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/doeshing/qrgen/internal/application/doctor"
	"github.com/doeshing/qrgen/internal/application/generate"
	historyapp "github.com/doeshing/qrgen/internal/application/history"
	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/config"
	"github.com/doeshing/qrgen/internal/infrastructure/encoder"
	"github.com/doeshing/qrgen/internal/infrastructure/history"
	"github.com/doeshing/qrgen/internal/infrastructure/imagesaver"
	"github.com/doeshing/qrgen/internal/pkg/logger"
	"github.com/doeshing/qrgen/internal/ports"
)

// Environment variables read while wiring.
const (
	EnvLogLevel = "QRGEN_LOG_LEVEL"
	EnvDebug    = "QRGEN_DEBUG"
)

// Options are the process-level overrides taken from flags.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogWriter  io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *slog.Logger
	Encoder        ports.QREncoder
	Generator      *generate.Service
	Saver          ports.ImageSaver
	Workflow       *generate.Workflow
	HistoryStore   ports.HistoryRepository
	HistoryService *historyapp.Service
	DoctorService  *doctor.Service

	closers []io.Closer
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(resolveLogLevel(opts.LogLevel, cfg.Log.Level), opts.LogWriter)
	logger.SetDefault(log)

	historyStore, closer, err := newHistoryStore(cfg)
	if err != nil {
		return nil, err
	}

	qrEncoder := encoder.New()
	generator := generate.NewService(qrEncoder)
	saver := imagesaver.New(imagesaver.NewCodec(cfg.Output.JPEGQuality))

	workflow := &generate.Workflow{
		Generator:   generator,
		Saver:       saver,
		Format:      imagesaver.FormatFor,
		DefaultPath: defaultPathFor(cfg),
	}
	if cfg.History.Enabled {
		workflow.History = historyStore
	}

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Encoder:        qrEncoder,
		Generator:      generator,
		Saver:          saver,
		Workflow:       workflow,
		HistoryStore:   historyStore,
		HistoryService: historyapp.NewService(historyStore),
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			History:        historyStore,
			Encoder:        qrEncoder,
		},
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	log.Debug("container ready",
		"config", cfgLoader.Path(),
		"history_backend", cfg.History.Backend,
		"history_path", historyStore.Path(),
	)
	return c, nil
}

// Close releases resources held by the adapters.
func (c *Container) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

func newHistoryStore(cfg domain.Config) (ports.HistoryRepository, io.Closer, error) {
	if strings.EqualFold(cfg.History.Backend, domain.HistoryBackendSQLite) {
		store, err := history.NewSQLiteStore(cfg.HistoryPath())
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
	return history.NewFileStore(cfg.HistoryPath()), nil, nil
}

func defaultPathFor(cfg domain.Config) func(domain.PayloadKind) string {
	return func(kind domain.PayloadKind) string {
		switch kind {
		case domain.PayloadWiFi:
			return cfg.DefaultOutputPath(domain.DefaultWiFiFileName)
		case domain.PayloadSocial:
			return cfg.DefaultOutputPath(domain.DefaultSocialFileName)
		default:
			return cfg.DefaultOutputPath(domain.DefaultTextFileName)
		}
	}
}

// resolveLogLevel picks flag, then environment, then config. QRGEN_DEBUG=1 wins over all.
func resolveLogLevel(flagLevel, configLevel string) string {
	if os.Getenv(EnvDebug) == "1" {
		return "debug"
	}
	if flagLevel != "" {
		return flagLevel
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		return env
	}
	return configLevel
}
