package cli

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/qrgen/internal/application/config"
	"github.com/doeshing/qrgen/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/qrgen/internal/infrastructure/config"
)

const (
	msgConfigurationValid       = "Configuration valid"
	msgNoDifferencesFromDefault = "No differences from default configuration."
)

func newConfigCommand(s *session) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect qrgen configuration",
	}

	configCmd.AddCommand(
		newConfigShowCommand(s),
		newConfigGetCommand(s),
		newConfigSetCommand(s),
		newConfigValidateCommand(s),
		newConfigResetCommand(s),
		newConfigDiffCommand(s),
	)
	return configCmd
}

func newConfigShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.Container(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(container.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", container.ConfigLoader.Path(), data)
			return nil
		},
	}
}

func newConfigGetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value (e.g. generation.error_correction)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.Container(cmd)
			if err != nil {
				return err
			}
			cfgMap, err := helpers.ConfigToMap(container.Config)
			if err != nil {
				return err
			}
			value, found := helpers.TraverseNestedMap(cfgMap, strings.Split(args[0], "."))
			if !found {
				return fmt.Errorf("key %s not found in configuration", args[0])
			}
			data, err := yaml.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to marshal value: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigSetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.Container(cmd)
			if err != nil {
				return err
			}
			key, value := args[0], strings.Join(args[1:], " ")

			cfgMap, err := helpers.ConfigToMap(container.Config)
			if err != nil {
				return err
			}
			parsed, err := helpers.ParseYAMLValue(value)
			if err != nil {
				return fmt.Errorf("failed to parse value: %w", err)
			}
			if !helpers.SetNestedMapValue(cfgMap, strings.Split(key, "."), parsed) {
				return fmt.Errorf("unknown configuration key %s", key)
			}
			updated, err := helpers.MapToConfig(cfgMap)
			if err != nil {
				return err
			}
			backup, err := helpers.SaveConfigWithValidation(container, updated)
			if err != nil {
				return err
			}
			container.Config = updated
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Set %s\n", key)
			if backup != "" {
				fmt.Fprintf(out, "Backup: %s\n", backup)
			}
			return nil
		},
	}
}

func newConfigValidateCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.Container(cmd)
			if err != nil {
				return err
			}
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := configapp.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgConfigurationValid)
			return nil
		},
	}
}

func newConfigResetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.Container(cmd)
			if err != nil {
				return err
			}
			loader, err := helpers.GetConfigLoader(container)
			if err != nil {
				return err
			}
			if _, err := helpers.BackupIfExists(loader); err != nil {
				return err
			}
			cfg, err := loader.Reset()
			if err != nil {
				return fmt.Errorf("failed to reset configuration: %w", err)
			}
			container.Config = cfg
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset at %s\n", loader.Path())
			return nil
		},
	}
}

func newConfigDiffCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.Container(cmd)
			if err != nil {
				return err
			}
			diff := cmp.Diff(configinfra.DefaultConfig(), container.Config)
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), msgNoDifferencesFromDefault)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}
