// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/ports"
)

const (
	serverName    = "countdown-timer"
	serverVersion = "1.0.0"

	stateResourceURI = "countdown://timer/state"

	defaultHistoryLimit = 10
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.StateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.StateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the countdown timer state: phase, remaining time, progress and visible controls"),
		),
		s.handleGetTimerState,
	)

	startTool := mcp.NewTool(
		"start_timer",
		mcp.WithDescription("Start a countdown from idle"),
		mcp.WithString(
			"duration",
			mcp.Description("Duration as MM:SS, bare seconds, or the exact name of a preset. Defaults to the current field text"),
		),
	)
	s.server.AddTool(startTool, s.handleStartTimer)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause a running countdown"),
		),
		s.handlePauseTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"resume_timer",
			mcp.WithDescription("Resume a paused countdown"),
		),
		s.handleResumeTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Stop the countdown and the alert and return to idle"),
		),
		s.handleResetTimer,
	)

	shortcutTool := mcp.NewTool(
		"apply_shortcut",
		mcp.WithDescription("Fill the duration field with a preset. Only allowed while idle"),
		mcp.WithNumber(
			"index",
			mcp.Required(),
			mcp.Description("1-based preset position as listed by list_presets"),
		),
	)
	s.server.AddTool(shortcutTool, s.handleApplyShortcut)

	s.server.AddTool(
		mcp.NewTool(
			"list_presets",
			mcp.WithDescription("List the configured duration presets"),
		),
		s.handleListPresets,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_notes",
			mcp.WithDescription("Get the saved notes"),
		),
		s.handleGetNotes,
	)

	setNotesTool := mcp.NewTool(
		"set_notes",
		mcp.WithDescription("Replace the saved notes. Empty text clears them"),
		mcp.WithString(
			"text",
			mcp.Required(),
			mcp.Description("The full notes text"),
		),
	)
	s.server.AddTool(setNotesTool, s.handleSetNotes)

	historyTool := mcp.NewTool(
		"list_history",
		mcp.WithDescription("List recently finished countdowns, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of runs (default: 10)"),
		),
	)
	s.server.AddTool(historyTool, s.handleListHistory)
}

// registerResources exposes the live timer state as a readable resource.
func (s *Server) registerResources() {
	s.server.AddResource(
		mcp.NewResource(
			stateResourceURI,
			"Timer state",
			mcp.WithResourceDescription("Current countdown snapshot"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleReadState,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func snapshotData(snap domain.Snapshot) map[string]interface{} {
	data := map[string]interface{}{
		"phase":             string(snap.Phase),
		"phase_label":       domain.GetPhaseLabel(snap.Phase),
		"display":           snap.Display,
		"remaining_seconds": snap.RemainingSeconds,
		"initial_seconds":   snap.InitialSeconds,
		"progress":          snap.Fraction(),
		"stroke_offset":     snap.StrokeOffset,
		"input_locked":      snap.InputLocked,
		"shortcuts_enabled": snap.ShortcutsEnabled,
		"controls":          snap.Controls,
		"version":           snap.Version,
	}
	if snap.Phase != domain.PhaseIdle {
		data["remaining"] = domain.FormatDuration(snap.RemainingSeconds)
	}
	return data
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (s *Server) snapshotResult(snap domain.Snapshot, err error, action string) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err)), nil
	}
	return jsonResult(snapshotData(snap))
}

func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stateProvider.GetTimerState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get timer state: %w", err)
	}
	return jsonResult(snapshotData(snap))
}

func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duration := request.GetString("duration", "")
	snap, err := s.stateProvider.StartTimer(ctx, duration)
	return s.snapshotResult(snap, err, "start timer")
}

func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stateProvider.PauseTimer(ctx)
	return s.snapshotResult(snap, err, "pause timer")
}

func (s *Server) handleResumeTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stateProvider.ResumeTimer(ctx)
	return s.snapshotResult(snap, err, "resume timer")
}

func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stateProvider.ResetTimer(ctx)
	return s.snapshotResult(snap, err, "reset timer")
}

func (s *Server) handleApplyShortcut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index := int(request.GetFloat("index", 0))
	if index < 1 {
		return mcp.NewToolResultError("index must be a preset position starting at 1"), nil
	}

	snap, err := s.stateProvider.ApplyShortcut(ctx, index-1)
	return s.snapshotResult(snap, err, "apply shortcut")
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets := s.stateProvider.ListPresets(ctx)

	list := make([]map[string]interface{}, 0, len(presets))
	for i, p := range presets {
		list = append(list, map[string]interface{}{
			"index": i + 1,
			"name":  p.Name,
			"value": p.Value,
		})
	}

	return jsonResult(map[string]interface{}{
		"presets":     list,
		"total_count": len(list),
	})
}

func (s *Server) handleGetNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.stateProvider.GetNotes(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get notes: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"notes": text})
}

func (s *Server) handleSetNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}

	if err := s.stateProvider.SetNotes(ctx, text); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save notes: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"saved": true, "length": len(text)})
}

func (s *Server) handleListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", defaultHistoryLimit))
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	runs, err := s.stateProvider.GetRecentRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		data := map[string]interface{}{
			"id":              run.ID,
			"duration":        domain.FormatDuration(run.InitialSeconds),
			"counted_seconds": run.ElapsedSeconds(),
			"outcome":         string(run.Outcome),
			"started_at":      run.StartedAt.Format(time.RFC3339),
			"ended_at":        run.EndedAt.Format(time.RFC3339),
		}
		if run.GitBranch != "" {
			data["git_branch"] = run.GitBranch
		}
		if run.GitCommit != "" {
			data["git_commit"] = run.GitCommit
		}
		list = append(list, data)
	}

	return jsonResult(map[string]interface{}{
		"runs":        list,
		"total_count": len(list),
	})
}

func (s *Server) handleReadState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := s.stateProvider.GetTimerState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get timer state: %w", err)
	}

	jsonData, err := json.Marshal(snapshotData(snap))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      stateResourceURI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
