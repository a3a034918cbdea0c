package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/adapters/tui"
)

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Show or edit the saved notes",
	Long:  `Show, replace or clear the notes kept alongside the timer.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return notesShowCmd.RunE(cmd, args)
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := app.notes.Get(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"text":  text,
				"saved": text != "",
			})
		}

		if text == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved notes.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var notesSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the saved notes",
	Long:  `Replace the saved notes. Without text an editor opens on the current notes. Blank text clears the notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			current, err := app.notes.Get(cmd.Context())
			if err != nil {
				return err
			}
			result := tui.RunNotesPrompt("Notes", current, &app.config.Theme)
			if result.Aborted || !result.Changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Notes unchanged.")
				return nil
			}
			text = result.Text
		}

		if err := app.notes.Set(cmd.Context(), text); err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "🗑️  Notes cleared.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "📝 Notes saved.")
		return nil
	},
}

var notesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.notes.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "🗑️  Notes cleared.")
		return nil
	},
}

func init() {
	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesSetCmd)
	notesCmd.AddCommand(notesClearCmd)
}
