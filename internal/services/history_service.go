package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the history export encoding.
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "md"
	ExportCSV      ExportFormat = "csv"
	ExportYAML     ExportFormat = "yaml"
)

// ParseExportFormat validates a --format value.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportMarkdown, ExportCSV, ExportYAML:
		return ExportFormat(s), nil
	case "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use md, csv or yaml)", s)
	}
}

// HistoryService handles run history queries and exports.
type HistoryService struct {
	runs ports.RunRepository
	now  func() time.Time
}

// NewHistoryService creates a new history service.
func NewHistoryService(storage ports.Storage) *HistoryService {
	return &HistoryService{runs: storage.Runs(), now: time.Now}
}

// PeriodStart converts a period name into the earliest start time it
// covers: today, week, month or all.
func (s *HistoryService) PeriodStart(period string) (time.Time, error) {
	now := s.now()
	switch period {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "all", "":
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q (use today, week, month or all)", period)
	}
}

// Recent returns the newest runs, at most limit of them.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]*domain.Run, error) {
	runs, err := s.runs.FindRecent(ctx, time.Time{}, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	return runs, nil
}

// Since returns runs started at or after since.
func (s *HistoryService) Since(ctx context.Context, since time.Time) ([]*domain.Run, error) {
	runs, err := s.runs.FindRecent(ctx, since, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	return runs, nil
}

// Get returns a single run.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run %s: %w", id, err)
	}
	return run, nil
}

// Stats aggregates runs for a named period.
func (s *HistoryService) Stats(ctx context.Context, period string) (*domain.RunStats, error) {
	since, err := s.PeriodStart(period)
	if err != nil {
		return nil, err
	}
	stats, err := s.runs.GetStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// exportRecord is the flat shape written by the csv and yaml exports.
type exportRecord struct {
	ID        string `yaml:"id"`
	Started   string `yaml:"started"`
	Ended     string `yaml:"ended"`
	Duration  string `yaml:"duration"`
	Counted   int    `yaml:"counted_seconds"`
	Outcome   string `yaml:"outcome"`
	GitBranch string `yaml:"git_branch,omitempty"`
	GitCommit string `yaml:"git_commit,omitempty"`
}

func toRecord(run *domain.Run) exportRecord {
	return exportRecord{
		ID:        run.ID,
		Started:   run.StartedAt.Format(time.RFC3339),
		Ended:     run.EndedAt.Format(time.RFC3339),
		Duration:  domain.FormatDuration(run.InitialSeconds),
		Counted:   run.ElapsedSeconds(),
		Outcome:   string(run.Outcome),
		GitBranch: run.GitBranch,
		GitCommit: run.GitCommit,
	}
}

// Export writes the runs of a period to w in the given format.
func (s *HistoryService) Export(ctx context.Context, w io.Writer, format ExportFormat, period string) error {
	since, err := s.PeriodStart(period)
	if err != nil {
		return err
	}
	runs, err := s.Since(ctx, since)
	if err != nil {
		return err
	}

	switch format {
	case ExportCSV:
		return s.exportCSV(w, runs)
	case ExportYAML:
		return s.exportYAML(w, runs)
	default:
		return s.exportMarkdown(w, runs)
	}
}

func (s *HistoryService) exportMarkdown(w io.Writer, runs []*domain.Run) error {
	if _, err := fmt.Fprintf(w, "# Countdown History\n\nGenerated: %s\n\n", s.now().Format("2006-01-02 15:04")); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	for _, run := range runs {
		fmt.Fprintf(w, "## %s %s\n", run.StartedAt.Format("2006-01-02 15:04"), domain.FormatDuration(run.InitialSeconds))
		fmt.Fprintf(w, "- Outcome: %s\n", domain.GetOutcomeLabel(run.Outcome))
		fmt.Fprintf(w, "- Counted: %s\n", domain.FormatDuration(run.ElapsedSeconds()))
		if run.GitBranch != "" {
			fmt.Fprintf(w, "- Branch: %s\n", run.GitBranch)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (s *HistoryService) exportCSV(w io.Writer, runs []*domain.Run) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{"id", "started", "ended", "duration", "counted_seconds", "outcome", "git_branch", "git_commit"})
	for _, run := range runs {
		r := toRecord(run)
		_ = cw.Write([]string{
			r.ID, r.Started, r.Ended, r.Duration,
			strconv.Itoa(r.Counted), r.Outcome, r.GitBranch, r.GitCommit,
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func (s *HistoryService) exportYAML(w io.Writer, runs []*domain.Run) error {
	records := make([]exportRecord, 0, len(runs))
	for _, run := range runs {
		records = append(records, toRecord(run))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"runs": records}); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return enc.Close()
}
