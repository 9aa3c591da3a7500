package clock

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(done) })

	go func() { _ = l.Run(ctx) }()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("callback did not run")
	}
}

func TestLoop_StopPreventsCallback(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var ran atomic.Bool
	timer := l.AfterFunc(20*time.Millisecond, func() { ran.Store(true) })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	err := l.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran.Load())
}

func TestLoop_EveryWithDispatcher(t *testing.T) {
	posted := make(chan func(), 16)
	l := NewLoop(WithDispatcher(func(f func()) { posted <- f }))

	ticks := 0
	timer := l.Every(5*time.Millisecond, func() { ticks++ })

	for i := 0; i < 3; i++ {
		select {
		case f := <-posted:
			f()
		case <-time.After(time.Second):
			t.Fatal("tick was not dispatched")
		}
	}
	assert.True(t, timer.Stop())
	assert.Equal(t, 3, ticks)

	// Run is a no-op with an external dispatcher.
	assert.NoError(t, l.Run(context.Background()))
}

func TestLoop_StoppedTimersReleaseGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan error, 1)
	go func() { ran <- l.Run(ctx) }()

	timers := make([]Timer, 0, 300)
	for i := 0; i < 300; i++ {
		timers = append(timers, l.Every(time.Millisecond, func() {}))
	}
	time.Sleep(20 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-ran, context.Canceled)

	// Let the tickers fill and block on the queue with nobody draining it.
	time.Sleep(20 * time.Millisecond)
	for _, timer := range timers {
		timer.Stop()
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoop_PostAfterRunReturns(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Run(ctx), context.Canceled)

	// Fill the queue; further posts must not block once Run has returned.
	posted := make(chan struct{})
	go func() {
		for i := 0; i < DefaultQueueSize+10; i++ {
			l.Post(func() {})
		}
		close(posted)
	}()

	select {
	case <-posted:
	case <-time.After(time.Second):
		t.Fatal("Post blocked after Run returned")
	}
}
