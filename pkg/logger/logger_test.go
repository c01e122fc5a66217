package logger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"notetaker/pkg/logger"
)

func observed(level zapcore.Level) (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logger.NewFromZap(zap.New(core)), logs
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name  string
		env   logger.Environment
		level string
	}{
		{"development debug", logger.Development, "debug"},
		{"production info", logger.Production, "info"},
		{"warning alias", logger.Production, "WARNING"},
		{"unknown level", logger.Development, "verbose"},
		{"empty level", logger.Development, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := logger.NewLogger(tc.env, tc.level)
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	ctx := context.Background()

	l.Debug(ctx, "debug message")
	l.Info(ctx, "info message", zap.String("key", "value"))
	l.Warn(ctx, "warn message")
	l.Error(ctx, "error message")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "info message", entries[1].Message)
	assert.Equal(t, "value", entries[1].ContextMap()["key"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLoggerWith(t *testing.T) {
	base, logs := observed(zapcore.InfoLevel)

	base.With(zap.String("repository", "note")).Info(context.Background(), "scoped")
	base.Info(context.Background(), "plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "note", entries[0].ContextMap()["repository"])
	assert.NotContains(t, entries[1].ContextMap(), "repository")
}

func TestRequestIDIsAddedToEntries(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	ctx := logger.NewRequestIDContext(context.Background(), "req-42")

	l.Info(ctx, "with id")
	l.Info(context.Background(), "without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()[logger.RequestID])
	assert.NotContains(t, entries[1].ContextMap(), logger.RequestID)
}

func TestRequestIDContext(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}

func TestWithRequestID(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	ctx := logger.NewRequestIDContext(context.Background(), "req-7")

	l.WithRequestID(ctx).Info(context.Background(), "bound")
	assert.Same(t, l, l.WithRequestID(context.Background()))

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "req-7", logs.All()[0].ContextMap()[logger.RequestID])
}

func TestFromContext(t *testing.T) {
	t.Run("stored logger", func(t *testing.T) {
		l, _ := observed(zapcore.InfoLevel)
		got, err := logger.FromContext(logger.NewContext(context.Background(), l))
		require.NoError(t, err)
		assert.Same(t, l, got)
	})

	t.Run("missing logger", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck
		_, err := logger.FromContext(nil)
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogResolution(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	logger.SetGlobalLogger(nil)
	fallback := logger.Log(context.Background())
	require.NotNil(t, fallback)

	global, _ := observed(zapcore.InfoLevel)
	logger.SetGlobalLogger(global)
	assert.Same(t, global, logger.Log(context.Background()))

	scoped, _ := observed(zapcore.InfoLevel)
	ctx := logger.NewContext(context.Background(), scoped)
	assert.Same(t, scoped, logger.Log(ctx))
}

func TestInitGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	logger.SetGlobalLogger(nil)
	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLogger(logger.Production))
	assert.Same(t, first, logger.Log(context.Background()), "second init keeps the existing logger")
}

func TestLogConcurrentAccess(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	l, _ := observed(zapcore.InfoLevel)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			logger.SetGlobalLogger(l)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, logger.Log(context.Background()))
		}()
	}
	wg.Wait()
}
