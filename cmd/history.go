package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/adapters/git"
	"github.com/xvierd/countdown-cli/internal/domain"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent countdowns",
	Long:  `List the most recent countdowns with their outcome and git context.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := app.history.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(runs))
			for _, r := range runs {
				list = append(list, runData(r))
			}
			return printJSON(out, map[string]interface{}{
				"runs":  list,
				"count": len(list),
			})
		}

		printHistory(out, runs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
}

func runData(r *domain.Run) map[string]interface{} {
	return map[string]interface{}{
		"id":                r.ID,
		"initial_seconds":   r.InitialSeconds,
		"remaining_seconds": r.RemainingSeconds,
		"counted_seconds":   r.ElapsedSeconds(),
		"outcome":           string(r.Outcome),
		"started_at":        r.StartedAt.Format("2006-01-02T15:04:05"),
		"ended_at":          r.EndedAt.Format("2006-01-02T15:04:05"),
		"git_branch":        r.GitBranch,
		"git_commit":        r.GitCommit,
	}
}

func printHistory(w io.Writer, runs []*domain.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No countdowns yet.")
		return
	}

	fmt.Fprintf(w, "⏳ Recent countdowns (%d):\n\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(w, "%s %s  %s  %s (%s counted)\n",
			outcomeIcon(r.Outcome),
			r.StartedAt.Format("2006-01-02 15:04"),
			domain.FormatDuration(r.InitialSeconds),
			domain.GetOutcomeLabel(r.Outcome),
			domain.FormatDuration(r.ElapsedSeconds()),
		)
		if r.GitBranch != "" {
			fmt.Fprintf(w, "   🌿 %s @ %s\n", r.GitBranch, git.ShortCommit(r.GitCommit))
		}
	}
}

func outcomeIcon(o domain.RunOutcome) string {
	switch o {
	case domain.RunOutcomeExpired:
		return "✅"
	case domain.RunOutcomeReset:
		return "↩️"
	default:
		return "❓"
	}
}
