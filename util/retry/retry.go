// Package retry runs an operation until it succeeds, the attempts run out or
// the context is done, sleeping between attempts.
package retry

import (
	"context"
	"time"

	"github.com/examcoin/examd/ulogger"
)

type SetOptions struct {
	RetryCount          int
	BackoffMultiplier   int
	BackoffDurationType time.Duration
	Message             string
	InfiniteRetry       bool
	ExponentialBackoff  bool
	BackoffFactor       float64
	MaxBackoff          time.Duration
	ShouldRetry         func(err error) bool
}

type Options func(s *SetOptions)

func WithRetryCount(retryCount int) Options {
	return func(o *SetOptions) {
		o.RetryCount = retryCount
	}
}

func WithBackoffMultiplier(backoffMultiplier int) Options {
	return func(o *SetOptions) {
		o.BackoffMultiplier = backoffMultiplier
	}
}

func WithBackoffDurationType(backoffDurationType time.Duration) Options {
	return func(o *SetOptions) {
		o.BackoffDurationType = backoffDurationType
	}
}

func WithMessage(message string) Options {
	return func(o *SetOptions) {
		o.Message = message
	}
}

func WithInfiniteRetry() Options {
	return func(o *SetOptions) {
		o.InfiniteRetry = true
	}
}

func WithExponentialBackoff() Options {
	return func(o *SetOptions) {
		o.ExponentialBackoff = true
	}
}

func WithBackoffFactor(factor float64) Options {
	return func(o *SetOptions) {
		o.BackoffFactor = factor
	}
}

func WithMaxBackoff(maxBackoff time.Duration) Options {
	return func(o *SetOptions) {
		o.MaxBackoff = maxBackoff
	}
}

// WithShouldRetry stops retrying as soon as f returns false for an error.
func WithShouldRetry(f func(err error) bool) Options {
	return func(o *SetOptions) {
		o.ShouldRetry = f
	}
}

func defaultOptions() *SetOptions {
	return &SetOptions{
		RetryCount:          3,
		BackoffMultiplier:   2,
		BackoffDurationType: time.Second,
		Message:             "retrying",
		BackoffFactor:       2.0,
		MaxBackoff:          30 * time.Second,
	}
}

// Retry calls f until it returns a nil error. Failed attempts are logged as
// warnings. When the attempts run out the last result and error are returned;
// when ctx is done first its error is returned.
func Retry[T any](ctx context.Context, logger ulogger.Logger, f func() (T, error), opts ...Options) (T, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var (
		result T
		err    error
	)

	backoff := o.BackoffDurationType

	for attempt := 0; o.InfiniteRetry || attempt < o.RetryCount; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = f()
		if err == nil {
			return result, nil
		}

		if o.ShouldRetry != nil && !o.ShouldRetry(err) {
			return result, err
		}

		if !o.InfiniteRetry && attempt == o.RetryCount-1 {
			break
		}

		logger.Warnf("%s (attempt %d): %v", o.Message, attempt+1, err)

		if o.ExponentialBackoff {
			if sleepErr := sleepFunc(ctx, backoff); sleepErr != nil {
				return result, sleepErr
			}

			backoff = CappedExponentialBackoff(backoff, o.BackoffFactor, o.MaxBackoff)
		} else if sleepErr := BackoffAndSleep(ctx, attempt, o.BackoffMultiplier, o.BackoffDurationType); sleepErr != nil {
			return result, sleepErr
		}
	}

	return result, err
}
