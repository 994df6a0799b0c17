// Package retry retries transport setup, such as dialling a workload's SSH
// endpoint, with capped exponential backoff. Provisioning steps themselves
// are never retried.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// ErrExhausted is wrapped when every attempt of a Policy failed.
var ErrExhausted = errors.New("retries exhausted")

// Policy bounds how often and how patiently an operation is retried.
// Zero fields take the values of DefaultPolicy.
type Policy struct {
	// Attempts is the total number of calls, including the first.
	Attempts int
	// Delay is the pause before the second attempt.
	Delay time.Duration
	// MaxDelay caps the pause between attempts.
	MaxDelay time.Duration
	// Factor multiplies the pause after every attempt.
	Factor float64
}

// DefaultPolicy is used for zero Policy fields.
var DefaultPolicy = Policy{
	Attempts: 6,
	Delay:    time.Second,
	MaxDelay: 30 * time.Second,
	Factor:   2,
}

func (p Policy) withDefaults() Policy {
	if p.Attempts < 1 {
		p.Attempts = DefaultPolicy.Attempts
	}
	if p.Delay <= 0 {
		p.Delay = DefaultPolicy.Delay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultPolicy.MaxDelay
	}
	if p.Factor < 1 {
		p.Factor = DefaultPolicy.Factor
	}
	return p
}

// backoff returns the delay sequence. Once the cap is reached wait.Backoff
// keeps returning it, so the attempt budget is enforced by Do.
func (p Policy) backoff() wait.Backoff {
	return wait.Backoff{
		Duration: p.Delay,
		Factor:   p.Factor,
		Cap:      p.MaxDelay,
		Steps:    p.Attempts,
	}
}

// Do calls op until it returns nil, returns an error marked Fatal, the
// attempts run out, or ctx is done. The pause starts after op returns, so a
// slow attempt does not eat into the next delay.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	p = p.withDefaults()

	var (
		attempts int
		lastErr  error
	)
	err := p.backoff().DelayFunc().Until(ctx, true, true, func(ctx context.Context) (bool, error) {
		attempts++
		lastErr = op(ctx)
		switch {
		case lastErr == nil:
			return true, nil
		case IsFatal(lastErr):
			return false, lastErr
		case attempts >= p.Attempts:
			return false, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
		default:
			return false, nil
		}
	})

	if wait.Interrupted(err) && !errors.Is(err, ErrExhausted) && !IsFatal(err) {
		return fmt.Errorf("interrupted after %d attempts (last error: %v): %w", attempts, lastErr, err)
	}
	return err
}

// FatalError marks an error that retrying cannot fix.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err so that Do returns it without another attempt.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err was wrapped with Fatal.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
