package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
)

func TestModel_ViewBeforeResize(t *testing.T) {
	svc, _ := newController(t)
	m := NewModel(context.Background(), svc, nil, nil)

	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ViewIdle(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()
	assert.Contains(t, view, "Countdown")
	assert.Contains(t, view, "Duration:")
	assert.Contains(t, view, "[f1] Long 10:00")
	assert.NotContains(t, view, "PAUSED")
}

func TestModel_ViewRunningHidesField(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, "3", "0", "enter")

	assert.NotContains(t, m.View(), "Duration:")
}

func TestModel_StaleSnapshotIgnored(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, "4", "5")
	current := m.snap

	stale := current
	stale.Version = current.Version - 1
	stale.Display = "99"

	result, _ := m.Update(snapshotMsg{snap: stale})
	m = result.(Model)
	assert.Equal(t, "45", m.snap.Display)
	assert.Equal(t, "45", m.input.Value())
}

func TestModel_SnapshotMessageApplied(t *testing.T) {
	m, sched := newTestModel(t, nil)
	m = press(m, "1", "0", "enter")
	sched.Advance(4)

	result, _ := m.Update(snapshotMsg{snap: m.ctl.Snapshot()})
	m = result.(Model)
	assert.Equal(t, "00:06", m.snap.Display)
	assert.Equal(t, 6, m.snap.RemainingSeconds)
}

func TestModel_NotifyShowsTooltip(t *testing.T) {
	m, _ := newTestModel(t, nil)

	result, cmd := m.Update(notifyMsg{message: "Time is up!", delay: time.Minute})
	m = result.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Time is up!")

	m.tooltip.Clear()
	assert.NotContains(t, m.View(), "Time is up!")
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.False(t, m.help.ShowAll)

	m = press(m, "?")
	assert.True(t, m.help.ShowAll)
}

func TestRenderBigTime(t *testing.T) {
	color := lipgloss.Color("#FFFFFF")

	t.Run("glyphs when wide", func(t *testing.T) {
		out := renderBigTime("12:34", color, 120)
		assert.Len(t, strings.Split(out, "\n"), 5)
	})

	t.Run("single line when narrow", func(t *testing.T) {
		out := renderBigTime("12:34", color, 30)
		assert.NotContains(t, out, "\n")
		assert.Contains(t, out, "12:34")
	})

	t.Run("empty field placeholder", func(t *testing.T) {
		out := renderBigTime("", color, 30)
		assert.Contains(t, out, emptyDisplay)
	})
}

func TestBigTimeWidth(t *testing.T) {
	assert.Equal(t, 0, bigTimeWidth(""))
	assert.Greater(t, bigTimeWidth("00:00"), bigTimeWidth("0:0"))
	assert.Equal(t, bigTimeWidth("12:34"), bigTimeWidth("12x:34"))
}

func TestDigitIndex(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		valid bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		got, ok := digitIndex(tt.in)
		assert.Equal(t, tt.valid, ok, tt.in)
		if tt.valid {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestPresetItems(t *testing.T) {
	items := PresetItems(domain.DefaultPresets())
	require.Len(t, items, 4)
}

func TestResolveTheme(t *testing.T) {
	defaults := config.DefaultThemeConfig()

	assert.Equal(t, defaults, resolveTheme(nil))

	custom := &config.ThemeConfig{ColorRunning: "#123456"}
	resolved := resolveTheme(custom)
	assert.Equal(t, "#123456", resolved.ColorRunning)
	assert.Equal(t, defaults.ColorIdle, resolved.ColorIdle)
	assert.Equal(t, defaults.IconApp, resolved.IconApp)
}

func TestPhaseColor(t *testing.T) {
	theme := config.DefaultThemeConfig()

	assert.Equal(t, lipgloss.Color(theme.ColorIdle), phaseColor(theme, domain.PhaseIdle))
	assert.Equal(t, lipgloss.Color(theme.ColorRunning), phaseColor(theme, domain.PhaseRunning))
	assert.Equal(t, lipgloss.Color(theme.ColorPaused), phaseColor(theme, domain.PhasePaused))
	assert.Equal(t, lipgloss.Color(theme.ColorExpired), phaseColor(theme, domain.PhaseExpired))
}

func TestKeyMap_SyncControls(t *testing.T) {
	km := newKeyMap(domain.DefaultPresets())
	require.Len(t, km.Shortcuts, 4)

	km.syncControls(domain.ControlsFor(domain.PhaseRunning))
	assert.False(t, km.Start.Enabled())
	assert.True(t, km.Pause.Enabled())
	assert.True(t, km.Reset.Enabled())
	assert.Equal(t, "pause", km.Pause.Help().Desc)

	km.syncControls(domain.ControlsFor(domain.PhaseExpired))
	assert.False(t, km.Start.Enabled())
	assert.False(t, km.Pause.Enabled())
	assert.True(t, km.Reset.Enabled())
}

func TestMsgQueue_PumpPreservesOrder(t *testing.T) {
	q := newMsgQueue()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	go q.pump(ctx, func(msg tea.Msg) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, msg.(snapshotMsg).snap.RemainingSeconds)
		if len(got) == 50 {
			close(done)
		}
	})

	for i := 0; i < 50; i++ {
		q.push(snapshotMsg{snap: domain.Snapshot{RemainingSeconds: i}})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not deliver all messages")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestMsgQueue_PushNeverBlocks(t *testing.T) {
	q := newMsgQueue()
	for i := 0; i < 1000; i++ {
		q.push(notifyMsg{message: "x"})
	}
	assert.Len(t, q.drain(), 1000)
	assert.Empty(t, q.drain())
}

func TestTimer_NotifyQueuesMessage(t *testing.T) {
	svc, _ := newController(t)
	tm := NewTimer(svc, Options{})

	tm.Notify("Invalid time", 3*time.Second)

	msgs := tm.queue.drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, notifyMsg{message: "Invalid time", delay: 3 * time.Second}, msgs[0])
}
