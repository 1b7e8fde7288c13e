package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/cli/helpers"
)

type outputFlags struct {
	generation helpers.GenerationFlags
	output     string
	noHistory  bool
	preview    bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.generation.ErrorCorrection, "ecc", "e", "", "Error correction level L|M|Q|H (default from config)")
	cmd.Flags().IntVar(&f.generation.Version, "qr-version", 0, "Force QR version 1-40 (default auto)")
	cmd.Flags().StringVar(&f.generation.Foreground, "fg", "", "Foreground colour, #rrggbb or a colour name")
	cmd.Flags().StringVar(&f.generation.Background, "bg", "", "Background colour, #rrggbb or a colour name")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file; .jpg/.jpeg saves JPEG, anything else PNG")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "Do not record this code in history")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "Print the code to the terminal")
}

func runGeneration(cmd *cobra.Command, s *session, kind domain.PayloadKind, payload string, flags *outputFlags) error {
	container, err := s.Container(cmd)
	if err != nil {
		return err
	}

	req, err := helpers.BuildRequest(container.Config, payload, flags.generation)
	if err != nil {
		return err
	}

	result, err := container.Workflow.Run(cmd.Context(), domain.GenerateCommand{
		Kind:      kind,
		Request:   req,
		Output:    flags.output,
		NoHistory: flags.noHistory,
	})
	if result.Path != "" {
		out := cmd.OutOrStdout()
		if flags.preview && IsTerminal(out) {
			RenderPreview(out, result.Image)
		}
		RenderResult(out, result)
	}
	return err
}

func newGenerateCommand(s *session) *cobra.Command {
	flags := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "generate <text>",
		Short: "Generate a QR code from text or a URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, s, domain.PayloadText, strings.Join(args, " "), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newWiFiCommand(s *session) *cobra.Command {
	flags := &outputFlags{}
	var (
		ssid     string
		password string
		auth     string
		hidden   bool
	)
	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Generate a QR code that joins a Wi-Fi network",
		RunE: func(cmd *cobra.Command, args []string) error {
			authType, err := domain.ParseWiFiAuth(auth)
			if err != nil {
				return err
			}
			payload, err := domain.WiFiPayload(authType, ssid, password, hidden)
			if err != nil {
				return err
			}
			return runGeneration(cmd, s, domain.PayloadWiFi, payload, flags)
		},
	}
	cmd.Flags().StringVar(&ssid, "ssid", "", "Network name")
	cmd.Flags().StringVar(&password, "password", "", "Network password")
	cmd.Flags().StringVar(&auth, "auth", string(domain.WiFiWPA), "Authentication: WPA|WEP|nopass")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Network does not broadcast its SSID")
	flags.register(cmd)
	return cmd
}

func newSocialCommand(s *session) *cobra.Command {
	flags := &outputFlags{}
	networks := make([]string, 0, len(domain.SocialNetworks()))
	for _, n := range domain.SocialNetworks() {
		networks = append(networks, string(n))
	}
	cmd := &cobra.Command{
		Use:       "social <network> <username|link>",
		Short:     "Generate a QR code for a social media profile",
		Long:      "Supported networks: " + strings.Join(networks, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: networks,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := domain.SocialPayload(domain.SocialNetwork(args[0]), args[1])
			if err != nil {
				return err
			}
			return runGeneration(cmd, s, domain.PayloadSocial, payload, flags)
		},
	}
	flags.register(cmd)
	return cmd
}
