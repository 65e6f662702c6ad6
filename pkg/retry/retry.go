package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/reels-client/pkg/logger"
)

// Config tunes the exponential backoff. Only local infrastructure (the
// session database at startup) goes through here; remote API calls are
// never retried.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// Permanent reports errors that no amount of waiting will fix, such as
	// rejected credentials. Nil treats every error as transient.
	Permanent func(error) bool
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

// Do calls op until it succeeds, returns a permanent error, runs out of
// retries or ctx is done. The returned error names the target and the number
// of attempts and wraps the last failure.
func Do(ctx context.Context, log logger.Logger, target string, op func(ctx context.Context) error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.Reset()

	attempts := 0
	attempt := func() error {
		attempts++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || (cfg.Permanent != nil && cfg.Permanent(err)) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Warn("Not reachable yet, retrying",
			"target", target,
			"attempt", attempts,
			"error", err,
			"next_attempt_in", wait.Round(time.Millisecond).String(),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)
	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		return fmt.Errorf("%s failed after %d attempts: %w", target, attempts, err)
	}
	if attempts > 1 {
		log.Info("Reachable after retries", "target", target, "attempts", attempts)
	}
	return nil
}
