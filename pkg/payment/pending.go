package payment

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Outcome is the resolved result of a payment attempt.
type Outcome struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"` // user-facing message, empty on success
	Err           error  `json:"-"`
}

// Succeeded builds a successful outcome.
func Succeeded(txID string) Outcome {
	return Outcome{Success: true, TransactionID: txID}
}

// Failed builds a failed outcome carrying a user-facing message.
func Failed(err error, msg string) Outcome {
	return Outcome{Success: false, Error: msg, Err: err}
}

// Pending is a payment attempt whose outcome resolves exactly once.
type Pending struct {
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a Pending that is already complete with o.
func Resolved(o Outcome) *Pending {
	p := newPending()
	p.resolve(o)
	return p
}

// resolve records o if the attempt has not completed yet.
func (p *Pending) resolve(o Outcome) {
	p.once.Do(func() {
		p.outcome = o
		close(p.done)
	})
}

// Done is closed once the outcome is known.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// IsComplete reports whether the outcome is known without blocking.
func (p *Pending) IsComplete() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Await blocks until the outcome is known or ctx is done.
// A finished ctx yields a failed outcome; a deadline maps to ErrTimeout.
func (p *Pending) Await(ctx context.Context) Outcome {
	select {
	case <-p.done:
		return p.outcome
	case <-ctx.Done():
		return contextOutcome(ctx.Err())
	}
}

// AwaitTimeout is Await with a fixed timeout.
func (p *Pending) AwaitTimeout(timeout time.Duration) Outcome {
	select {
	case <-p.done:
		return p.outcome
	case <-time.After(timeout):
		return Failed(ErrTimeout, MsgPaymentTimeout)
	}
}

func contextOutcome(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return Failed(errors.Join(ErrTimeout, err), MsgPaymentTimeout)
	}
	return Failed(errors.Join(ErrCanceled, err), MsgPaymentFailed)
}
