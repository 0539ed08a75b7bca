package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/logger"
	"learnloop/internal/pkg/metrics"
)

// Retry bounds how often a store call is repeated after a transient failure.
// The zero value makes a single attempt.
type Retry struct {
	Attempts        int
	InitialInterval time.Duration
}

func (r Retry) do(ctx context.Context, op func() error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	interval := r.InitialInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = interval
	eb.MaxInterval = 2 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)

	tries := 0
	err := backoff.Retry(func() error {
		tries++
		err := op()
		if err != nil && !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)

	if err != nil && isTransient(err) {
		metrics.StoreRetries.WithLabelValues("exhausted").Inc()
		logger.WithModule("repository").Warn("store call failed after retries",
			zap.Int("attempts", tries),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err == nil && tries > 1 {
		metrics.StoreRetries.WithLabelValues("recovered").Inc()
	}
	return err
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			return true
		}
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
