package payment

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/logger"
)

const (
	DefaultLatency     = 2 * time.Second
	DefaultFailureRate = 0.1
)

// Random is the source of failure draws. Float64 returns a value in [0,1).
type Random interface {
	Float64() float64
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithLatency sets the delay before an attempt resolves.
func WithLatency(d time.Duration) SimulatorOption {
	return func(s *Simulator) {
		if d >= 0 {
			s.latency = d
		}
	}
}

// WithFailureRate sets the probability of a declined charge. Values outside
// [0,1] are clamped.
func WithFailureRate(rate float64) SimulatorOption {
	return func(s *Simulator) {
		s.failureRate = min(max(rate, 0), 1)
	}
}

// WithRandom sets the random source used for failure draws.
func WithRandom(r Random) SimulatorOption {
	return func(s *Simulator) {
		if r != nil {
			s.rnd = r
		}
	}
}

// WithSeed makes failure draws reproducible using a PCG source.
// Not cryptographically secure; it only decides simulated declines.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithTransactionIDGenerator overrides transaction id generation.
func WithTransactionIDGenerator(fn func() string) SimulatorOption {
	return func(s *Simulator) {
		if fn != nil {
			s.newTxID = fn
		}
	}
}

func WithLogger(l *slog.Logger) SimulatorOption {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simulator is a gateway stand-in. Each attempt resolves after the configured
// latency and declines with the configured probability.
type Simulator struct {
	latency     time.Duration
	failureRate float64
	newTxID     func() string
	logger      *slog.Logger

	mu  sync.Mutex // guards rnd
	rnd Random
}

// NewSimulator returns a Simulator with a 2s latency and 10% failure rate.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		latency:     DefaultLatency,
		failureRate: DefaultFailureRate,
		newTxID:     NewTransactionID,
		logger:      logger.Discard(),
		rnd:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process starts a simulated charge. Invalid input resolves immediately as a
// failure. The subscription is read, never modified.
func (s *Simulator) Process(ctx context.Context, sub *billing.Subscription, method billing.PaymentMethod) *Pending {
	if err := validateRequest(sub, method); err != nil {
		return Resolved(Failed(errors.Join(ErrInvalidRequest, err), MsgInvalidRequest))
	}

	p := newPending()
	subID, amount := sub.ID, sub.Amount

	go func() {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			p.resolve(contextOutcome(ctx.Err()))
			return
		case <-timer.C:
		}
		// Both cases may be ready together; never capture past the deadline.
		if err := ctx.Err(); err != nil {
			p.resolve(contextOutcome(err))
			return
		}

		if s.draw() < s.failureRate {
			s.logger.WarnContext(ctx, "simulated payment declined",
				logger.Component("payment"),
				logger.SubscriptionID(subID),
				logger.Amount(amount),
				slog.String("method", method.Tag()),
			)
			p.resolve(Failed(ErrDeclined, MsgPaymentFailed))
			return
		}

		txID := s.newTxID()
		s.logger.InfoContext(ctx, "simulated payment captured",
			logger.Component("payment"),
			logger.SubscriptionID(subID),
			logger.TransactionID(txID),
			logger.Amount(amount),
		)
		p.resolve(Succeeded(txID))
	}()

	return p
}

func (s *Simulator) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// NewTransactionID returns "txn_" followed by 16 hex characters.
func NewTransactionID() string {
	return "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
