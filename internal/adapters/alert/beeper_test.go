package alert

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeeper_PlaysPattern(t *testing.T) {
	var tones atomic.Int32
	b := NewBeeper(
		WithBeepFunc(func(freq float64, ms int) error {
			tones.Add(1)
			return nil
		}),
		WithPattern(3, time.Millisecond),
	)

	require.NoError(t, b.Play())
	assert.Equal(t, int32(3), tones.Load())
	assert.False(t, b.Playing())
}

func TestBeeper_StopInterruptsPlayback(t *testing.T) {
	var tones atomic.Int32
	b := NewBeeper(
		WithBeepFunc(func(freq float64, ms int) error {
			tones.Add(1)
			return nil
		}),
		WithPattern(5, time.Hour),
	)

	done := make(chan error, 1)
	go func() { done <- b.Play() }()

	require.Eventually(t, func() bool { return tones.Load() == 1 }, time.Second, time.Millisecond)
	b.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Play did not return after Stop")
	}
	assert.Equal(t, int32(1), tones.Load())
	assert.False(t, b.Playing())
}

func TestBeeper_StopCancelsCuedPlayback(t *testing.T) {
	var tones atomic.Int32
	b := NewBeeper(
		WithBeepFunc(func(freq float64, ms int) error {
			tones.Add(1)
			return nil
		}),
		WithPattern(3, time.Millisecond),
	)

	play := b.Cue()
	assert.True(t, b.Playing())
	b.Stop()
	assert.False(t, b.Playing())

	done := make(chan error, 1)
	go func() {
		time.Sleep(5 * time.Millisecond)
		done <- play()
	}()

	require.NoError(t, <-done)
	assert.Equal(t, int32(0), tones.Load())
	assert.False(t, b.Playing())
}

func TestBeeper_LaterCueSupersedesEarlier(t *testing.T) {
	var tones atomic.Int32
	b := NewBeeper(
		WithBeepFunc(func(freq float64, ms int) error {
			tones.Add(1)
			return nil
		}),
		WithPattern(2, time.Millisecond),
	)

	first := b.Cue()
	second := b.Cue()

	require.NoError(t, first())
	assert.Equal(t, int32(0), tones.Load())
	require.NoError(t, second())
	assert.Equal(t, int32(2), tones.Load())
}

func TestBeeper_StopWhenSilent(t *testing.T) {
	b := NewBeeper(WithBeepFunc(func(float64, int) error { return nil }))
	b.Stop()
	assert.False(t, b.Playing())
}

func TestBeeper_PlayError(t *testing.T) {
	boom := errors.New("no audio device")
	b := NewBeeper(WithBeepFunc(func(float64, int) error { return boom }))

	err := b.Play()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, b.Playing())
}

func TestSilent(t *testing.T) {
	var s Silent
	assert.NoError(t, s.Play())
	assert.NoError(t, s.Cue()())
	s.Stop()
}
