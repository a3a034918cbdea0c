package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/services"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the shortcut presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPresets(cmd.OutOrStdout(), app.config.TimerOptions().Presets)
	},
}

var presetsFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find presets by name",
	Long:  `Find presets whose names fuzzily match the query, best match first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches := services.FindPresets(args[0], app.config.TimerOptions().Presets)
		if len(matches) == 0 && !jsonOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "No presets match %q.\n", args[0])
			return nil
		}
		return printPresets(cmd.OutOrStdout(), matches)
	},
}

func init() {
	presetsCmd.AddCommand(presetsFindCmd)
}

func printPresets(w io.Writer, presets []domain.Preset) error {
	if jsonOutput {
		return printJSON(w, map[string]interface{}{
			"presets": presets,
			"count":   len(presets),
		})
	}
	for i, p := range presets {
		fmt.Fprintf(w, "  [%d] %-10s %s\n", i+1, p.Name, p.Value)
	}
	return nil
}
