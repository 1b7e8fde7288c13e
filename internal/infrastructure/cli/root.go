package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/qrgen/internal/app"
	"github.com/doeshing/qrgen/internal/pkg/logger"
)

// Options holds CLI-level configuration.
type Options struct {
	// Stderr receives log output. Nil means os.Stderr.
	Stderr io.Writer
	// Container skips wiring from config; used by tests.
	Container *app.Container
}

// session builds the container once flags are parsed.
type session struct {
	opts       Options
	configPath string
	logLevel   string
	container  *app.Container
	owned      bool
}

func (s *session) Container(cmd *cobra.Command) (*app.Container, error) {
	if s.container == nil {
		if err := s.build(cmd); err != nil {
			return nil, err
		}
	}
	if s.container.Logger != nil {
		cmd.SetContext(logger.With(cmd.Context(), s.container.Logger))
	}
	return s.container, nil
}

func (s *session) build(cmd *cobra.Command) error {
	if s.opts.Container != nil {
		s.container = s.opts.Container
		return nil
	}
	container, err := app.BuildContainer(cmd.Context(), app.Options{
		ConfigPath: s.configPath,
		LogLevel:   s.logLevel,
		LogWriter:  s.opts.Stderr,
	})
	if err != nil {
		return err
	}
	s.container = container
	s.owned = true
	return nil
}

func (s *session) Close() error {
	if !s.owned || s.container == nil {
		return nil
	}
	err := s.container.Close()
	s.container = nil
	return err
}

// NewRootCmd wires the cobra root command. The returned close function
// releases the container and must be called after Execute, whatever its result.
func NewRootCmd(opts Options) (*cobra.Command, func() error) {
	root, s := newRootCmd(opts)
	return root, s.Close
}

func newRootCmd(opts Options) (*cobra.Command, *session) {
	s := &session{opts: opts}

	root := &cobra.Command{
		Use:   "qrgen",
		Short: "qrgen - QR code generator",
		Long:  "qrgen renders text, Wi-Fi credentials and social profile links as QR code images and keeps a history of what it generated.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Config file (default ~/.qrgen/config.yaml, or $QRGEN_CONFIG)")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Log level: debug|info|warn|error")

	root.AddCommand(
		newGenerateCommand(s),
		newWiFiCommand(s),
		newSocialCommand(s),
		newHistoryCommand(s),
		newConfigCommand(s),
		newDoctorCommand(s),
		newVersionCommand(),
	)
	return root, s
}
