// Package retry повторяет операции запуска с экспоненциальной задержкой.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notetaker/pkg/logger"
)

// Константы для логирования.
const (
	LogAttemptFailed = "attempt failed, retrying"
	LogRecovered     = "operation succeeded after retries"
	LogGaveUp        = "giving up after max attempts"
)

// ErrCanceled возвращается, если ctx отменен во время ожидания между попытками.
var ErrCanceled = errors.New("canceled while waiting for retry")

// Policy описывает число попыток и рост задержки.
type Policy struct {
	// MaxAttempts включает первую попытку.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64
	// Retryable решает, стоит ли повторять ошибку. nil означает "все, кроме отмены ctx".
	Retryable func(error) bool
}

// DefaultPolicy возвращает политику по умолчанию.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    5,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Factor:         2,
	}
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Do выполняет op до успеха, неповторяемой ошибки или исчерпания попыток.
// Возвращается последняя ошибка op.
func Do(ctx context.Context, name string, p Policy, op func(ctx context.Context) error) error {
	log := logger.Log(ctx).With(zap.String("operation", name))

	attempts := max(p.MaxAttempts, 1)
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	backoff := p.InitialBackoff

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRecovered, zap.Int("attempts", attempt))
			}
			return nil
		}
		if !p.retryable(err) {
			return err
		}
		if attempt >= attempts {
			log.Warn(ctx, LogGaveUp, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogAttemptFailed,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * factor)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
}
