// Package retry wraps blocking calls to unreliable services with a bounded
// exponential backoff and a per-attempt timeout.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	AttemptTimeout  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		AttemptTimeout:  10 * time.Second,
	}
}

// Jitter is the randomization applied to every backoff wait: a wait of d
// lasts anywhere in [d*(1-Jitter), d*(1+Jitter)].
const Jitter = backoff.DefaultRandomizationFactor

// Budget is the longest Do can take: every attempt timing out plus the
// longest possible wait before each retry.
func (p Policy) Budget() time.Duration {
	attempts := time.Duration(p.MaxRetries + 1)
	maxWait := time.Duration(float64(p.MaxInterval) * (1 + Jitter))
	return attempts*p.AttemptTimeout + time.Duration(p.MaxRetries)*maxWait
}

// Classifier decides whether a failed attempt may be retried.
type Classifier func(err error) bool

// Notify is called after each failed attempt that will be retried.
type Notify func(attempt int, err error, wait time.Duration)

// Do runs op until it succeeds, fails with a non-retryable error, the retry
// budget is spent or ctx is done. The last error is returned unwrapped.
func Do(ctx context.Context, p Policy, retryable Classifier, op func(ctx context.Context) error, notify Notify) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.RandomizationFactor = Jitter
	b.MaxElapsedTime = 0
	b.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)

	attempt := 0
	run := func() error {
		attempt++
		attemptCtx := ctx
		if p.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
			defer cancel()
		}

		err := op(attemptCtx)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempt, err, wait)
		}
	}

	return backoff.RetryNotify(run, policy, onRetry)
}
