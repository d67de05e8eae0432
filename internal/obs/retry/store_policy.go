package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultStorePolicy is the policy for compensating record-store writes.
// Attempts are few and fast: the caller is holding up an HTTP response.
func DefaultStorePolicy(name string, log *zap.Logger) Policy {
	return Policy{
		Name:     name,
		Attempts: 3,
		Backoff:  ExpoJitter{Base: 50 * time.Millisecond, Max: 500 * time.Millisecond, Jitter: 0.2},
		Retryable: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		},
		OnAttempt: func(i int, err error) {
			if log != nil {
				log.Warn("store retry", zap.String("op", name), zap.Int("attempt", i+1), zap.Error(err))
			}
		},
		OnExhaust: func(err error) {
			if log != nil && !errors.Is(err, context.Canceled) {
				log.Error("store retries exhausted", zap.String("op", name), zap.Error(err))
			}
		},
	}
}
