package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/services"
)

var (
	exportFormat string
	exportPeriod string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export countdown history",
	Long:  "Export your countdown history in markdown, CSV or YAML format.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := services.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}
		if err := app.history.Export(cmd.Context(), cmd.OutOrStdout(), format, exportPeriod); err != nil {
			return fmt.Errorf("failed to export history: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md, csv or yaml")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "week", "Time period: today, week, month or all")
}
