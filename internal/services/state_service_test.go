package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/countdown-cli/internal/domain"
)

func newStateFixture(t *testing.T) (*StateService, *serviceFixture) {
	t.Helper()
	f := newFixture(t)
	return NewStateService(f.svc, NewNotesService(f.store), NewHistoryService(f.store)), f
}

func TestStateService_TimerControls(t *testing.T) {
	state, f := newStateFixture(t)
	ctx := context.Background()

	snap, err := state.StartTimer(ctx, "quick")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseRunning, snap.Phase)
	assert.Equal(t, 30, snap.InitialSeconds)

	f.sched.Advance(5)

	snap, err = state.PauseTimer(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePaused, snap.Phase)
	assert.Equal(t, 25, snap.RemainingSeconds)

	_, err = state.PauseTimer(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	snap, err = state.ResumeTimer(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseRunning, snap.Phase)

	snap, err = state.ResetTimer(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIdle, snap.Phase)

	current, err := state.GetTimerState(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, current.Version)

	runs, err := state.GetRecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunOutcomeReset, runs[0].Outcome)
	assert.Equal(t, 5, runs[0].ElapsedSeconds())
}

func TestStateService_StartRejectsUnparsableText(t *testing.T) {
	for _, input := range []string{"e", "t", "abc", "quic", "0"} {
		t.Run(input, func(t *testing.T) {
			state, f := newStateFixture(t)

			snap, err := state.StartTimer(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrInvalidDuration)
			assert.Equal(t, domain.PhaseIdle, snap.Phase)
			assert.Equal(t, "", snap.Display)
			assert.Equal(t, 0, f.sched.Live())

			notices := f.notifier.all()
			require.NotEmpty(t, notices)
			assert.Equal(t, domain.MsgInvalidTime, notices[len(notices)-1].message)
		})
	}
}

func TestStateService_StartUsesFieldWhenEmpty(t *testing.T) {
	state, f := newStateFixture(t)
	ctx := context.Background()

	_, err := f.svc.Edit("0130")
	require.NoError(t, err)

	snap, err := state.StartTimer(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 90, snap.InitialSeconds)
}

func TestStateService_ShortcutsAndPresets(t *testing.T) {
	state, _ := newStateFixture(t)
	ctx := context.Background()

	presets := state.ListPresets(ctx)
	require.Len(t, presets, 4)

	snap, err := state.ApplyShortcut(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	assert.Equal(t, "05:00", snap.Display)

	snap, err = state.StartTimer(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 300, snap.InitialSeconds)

	_, err = state.ApplyShortcut(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrShortcutsDisabled)
}

func TestStateService_Notes(t *testing.T) {
	state, _ := newStateFixture(t)
	ctx := context.Background()

	require.NoError(t, state.SetNotes(ctx, "buy milk"))
	text, err := state.GetNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", text)

	require.NoError(t, state.SetNotes(ctx, ""))
	text, err = state.GetNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestStateService_Subscribe(t *testing.T) {
	state, _ := newStateFixture(t)
	ctx := context.Background()

	var phases []domain.Phase
	unsubscribe := state.Subscribe(func(s domain.Snapshot) { phases = append(phases, s.Phase) })

	_, err := state.StartTimer(ctx, "00:10")
	require.NoError(t, err)
	unsubscribe()
	_, err = state.ResetTimer(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.Phase{domain.PhaseRunning}, phases)
}
