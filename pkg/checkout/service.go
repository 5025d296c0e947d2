package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/ledger"
	"github.com/dmitrymomot/billingkit/pkg/logger"
	"github.com/dmitrymomot/billingkit/pkg/payment"
	"github.com/dmitrymomot/billingkit/pkg/promo"
)

// DefaultPaymentTimeout bounds how long Subscribe waits for the gateway.
const DefaultPaymentTimeout = 30 * time.Second

// Option configures a Service.
type Option func(*Service)

// WithGuard sets the per-session payment guard.
func WithGuard(g Guard) Option {
	return func(s *Service) {
		if g != nil {
			s.guard = g
		}
	}
}

// WithPromoValidator enables promo codes on Subscribe and Quote.
func WithPromoValidator(v *promo.Validator) Option {
	return func(s *Service) {
		s.promos = v
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPaymentTimeout overrides DefaultPaymentTimeout.
func WithPaymentTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock sets the clock used for status reports. Defaults to the factory clock.
func WithClock(c billing.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithFormatter renders display prices in quotes.
func WithFormatter(f *billing.Formatter) Option {
	return func(s *Service) {
		s.formatter = f
	}
}

// Service runs the subscription flows: quote, subscribe, trial, cancel and
// status. Public methods never panic and never commit anything on failure.
type Service struct {
	factory   *billing.Factory
	processor payment.Processor
	builder   *ledger.Builder
	store     ledger.Store
	guard     Guard
	promos    *promo.Validator
	formatter *billing.Formatter
	logger    *slog.Logger
	timeout   time.Duration
	clock     billing.Clock
}

// New wires a Service. factory, processor, builder and store are required.
func New(factory *billing.Factory, processor payment.Processor, builder *ledger.Builder, store ledger.Store, opts ...Option) *Service {
	if factory == nil || processor == nil || builder == nil || store == nil {
		panic("checkout: factory, processor, builder and store are required")
	}
	s := &Service{
		factory:   factory,
		processor: processor,
		builder:   builder,
		store:     store,
		guard:     NewMemoryGuard(),
		logger:    logger.Discard(),
		timeout:   DefaultPaymentTimeout,
		clock:     factory.Clock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("checkout"))
	return s
}

// Result is the outcome of a subscription flow.
type Result struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	User         billing.User          `json:"user"`
	Subscription *billing.Subscription `json:"subscription,omitempty"`
	Entry        *ledger.Entry         `json:"entry,omitempty"`
	PromoCode    string                `json:"promo_code,omitempty"`
	Err          error                 `json:"-"`
}

func failure(user billing.User, msg string, err error) Result {
	return Result{Success: false, Message: msg, User: user, Err: err}
}

// recoverResult converts a panic inside a public method into a failed Result.
func (s *Service) recoverResult(ctx context.Context, op string, user billing.User, res *Result) {
	if r := recover(); r != nil {
		s.logger.ErrorContext(ctx, "checkout operation panicked",
			slog.String("operation", op),
			slog.Any("panic", r),
			logger.UserID(user.ID),
		)
		*res = failure(user, MsgSomethingWrong, ErrInternal)
	}
}

// recoverErr is recoverResult for operations that return a plain error.
func (s *Service) recoverErr(ctx context.Context, op string, err *error) {
	if r := recover(); r != nil {
		s.logger.ErrorContext(ctx, "checkout operation panicked",
			slog.String("operation", op),
			slog.Any("panic", r),
		)
		*err = ErrInternal
	}
}
