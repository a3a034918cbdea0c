package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Print the effective configuration as TOML. Subcommands edit presets and notifications.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := app.config.EncodeTOML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configPresetCmd = &cobra.Command{
	Use:   "preset <number> <name> <MM:SS>",
	Short: "Replace a shortcut preset",
	Long: `Replace the preset at the given position (1-based). A position one past
the last preset appends a new one.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid preset number %q: %w", args[0], err)
		}

		presets, err := replacePreset(app.config.Shortcuts.Presets, num, domain.Preset{Name: args[1], Value: args[2]})
		if err != nil {
			return err
		}
		app.config.Shortcuts.Presets = presets

		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: [%d] %s %s\n", num, args[1], args[2])
		return nil
	},
}

var configNotificationsCmd = &cobra.Command{
	Use:       "notifications <off|on|sound>",
	Short:     "Set desktop notifications and the expiry sound",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"off", "on", "sound"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setNotifications(&app.config.Notifications, args[0]); err != nil {
			return err
		}
		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: notifications %s\n", notificationStatus(app.config.Notifications))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configPresetCmd)
	configCmd.AddCommand(configNotificationsCmd)
}

// replacePreset returns presets with position num (1-based) set to p.
func replacePreset(presets []domain.Preset, num int, p domain.Preset) ([]domain.Preset, error) {
	if err := domain.ValidatePreset(p); err != nil {
		return nil, err
	}
	if num < 1 || num > len(presets)+1 {
		return nil, fmt.Errorf("preset number must be between 1 and %d", len(presets)+1)
	}

	out := make([]domain.Preset, len(presets), len(presets)+1)
	copy(out, presets)
	if num == len(presets)+1 {
		return append(out, p), nil
	}
	out[num-1] = p
	return out, nil
}

func setNotifications(cfg *config.NotificationConfig, mode string) error {
	switch strings.ToLower(mode) {
	case "off":
		cfg.Enabled = false
		cfg.Sound = false
	case "on":
		cfg.Enabled = true
		cfg.Sound = false
	case "sound":
		cfg.Enabled = true
		cfg.Sound = true
	default:
		return fmt.Errorf("invalid notification mode %q (use off, on or sound)", mode)
	}
	return nil
}

func notificationStatus(cfg config.NotificationConfig) string {
	switch {
	case cfg.Enabled && cfg.Sound:
		return "on (with sound)"
	case cfg.Enabled:
		return "on"
	case cfg.Sound:
		return "off (sound only)"
	default:
		return "off"
	}
}
