package service

import (
	"context"
	"errors"
	"time"

	"github.com/yasminalves16/restaurante/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxConflictRetries = 5

func newConflictBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = 3 * time.Second
	return b
}

// retryOnConflict reruns fn while it fails on a unique index. fn must own its whole transaction, so that a
// retry starts from a clean state. When retries run out the result is exhausted.
func retryOnConflict(ctx context.Context, log *zap.Logger, op string, exhausted error, fn func() error) error {
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.ConflictRetries.WithLabelValues(op).Inc()
			log.Debug("unique conflict, retrying", zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(newConflictBackOff(), maxConflictRetries), ctx))

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Warn("unique conflict persisted after retries", zap.String("op", op), zap.Int("attempts", attempt))
		return exhausted
	}
	return err
}
