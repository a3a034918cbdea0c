package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
)

var statsPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show countdown statistics",
	Long:  `Show how many countdowns ran to the end or were reset, and how much time was counted down.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := app.history.Stats(cmd.Context(), statsPeriod)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]interface{}{
				"period":          statsPeriod,
				"since":           stats.Since.Format("2006-01-02T15:04:05"),
				"total_runs":      stats.TotalRuns,
				"expired":         stats.Expired,
				"reset":           stats.Reset,
				"counted_seconds": stats.CountedSeconds,
			})
		}

		fmt.Fprintln(out)
		renderDashboard(out, statsLabel(statsPeriod), stats, &app.config.Theme)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week", "Time period: today, week, month or all")
}

func statsLabel(period string) string {
	switch period {
	case "today":
		return "Today"
	case "week":
		return "Last 7 days"
	case "month":
		return "Last 30 days"
	default:
		return "All time"
	}
}

func renderDashboard(w io.Writer, label string, stats *domain.RunStats, theme *config.ThemeConfig) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorRunning))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.GradientEnd))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorRunning))

	fmt.Fprintf(w, "  %s\n", titleStyle.Render(label))
	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	counted := time.Duration(stats.CountedSeconds) * time.Second
	fmt.Fprintf(w, "  Total: %s countdowns, %s counted down\n\n",
		valueStyle.Render(fmt.Sprintf("%d", stats.TotalRuns)),
		valueStyle.Render(formatHours(counted.Hours())),
	)

	if stats.TotalRuns == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("No countdowns in this period."))
		return
	}

	fmt.Fprintf(w, "  %s\n", dimStyle.Render("By outcome"))
	rows := []struct {
		outcome domain.RunOutcome
		count   int
	}{
		{domain.RunOutcomeExpired, stats.Expired},
		{domain.RunOutcomeReset, stats.Reset},
	}

	maxCount := max(stats.Expired, stats.Reset)
	maxBarWidth := 30
	for _, row := range rows {
		barWidth := 0
		if maxCount > 0 {
			barWidth = int(math.Round(float64(row.count) / float64(maxCount) * float64(maxBarWidth)))
		}
		if barWidth < 1 && row.count > 0 {
			barWidth = 1
		}
		fmt.Fprintf(w, "  %s %s %d\n",
			dimStyle.Render(fmt.Sprintf("%-10s", domain.GetOutcomeLabel(row.outcome))),
			barColor.Render(buildBar(barWidth)),
			row.count,
		)
	}
	fmt.Fprintln(w)

	completion := float64(stats.Expired) / float64(stats.TotalRuns) * 100
	fmt.Fprintf(w, "  %s  %s\n\n",
		dimStyle.Render("Completion rate:"),
		valueStyle.Render(fmt.Sprintf("%.0f%%", completion)),
	)
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

// formatHours formats a float hours value as "Xh Ym".
func formatHours(h float64) string {
	if h < 0.01 {
		return "0m"
	}
	hours := int(h)
	minutes := int(math.Round((h - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
