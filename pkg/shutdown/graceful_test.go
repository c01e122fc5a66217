package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notetaker/pkg/shutdown"
)

func TestRun_ExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	shutdown.Run(context.Background(), time.Second, hook, failing, hook)

	assert.EqualValues(t, 3, calls.Load())
}

func TestRun_TimeoutDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := func(ctx context.Context) error {
		select {
		case <-release:
		case <-time.After(time.Minute):
		}
		return nil
	}

	start := time.Now()
	shutdown.Run(context.Background(), 50*time.Millisecond, slow)

	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_HookSeesDeadline(t *testing.T) {
	var hasDeadline atomic.Bool
	shutdown.Run(context.Background(), time.Second, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hasDeadline.Store(ok)
		return nil
	})

	assert.True(t, hasDeadline.Load())
}

func TestWait_ReturnsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var called atomic.Bool

	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, func(context.Context) error {
			called.Store(true)
			return nil
		})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after cancel")
	}
	assert.True(t, called.Load())
}

func TestWait_ReturnsOnSignal(t *testing.T) {
	var called atomic.Bool

	done := make(chan struct{})
	go func() {
		shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
			called.Store(true)
			return nil
		})
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after SIGTERM")
	}
	assert.True(t, called.Load())
}
