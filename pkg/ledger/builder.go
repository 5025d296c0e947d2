package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/billingkit/pkg/billing"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

func WithClock(c billing.Clock) BuilderOption {
	return func(b *Builder) {
		if c != nil {
			b.clock = c
		}
	}
}

// WithInvoiceLinker attaches invoice URLs to paid entries.
func WithInvoiceLinker(l InvoiceLinker) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.linker = l
		}
	}
}

func WithIDGenerator(fn func() string) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// Builder derives billing history entries from subscriptions.
type Builder struct {
	clock  billing.Clock
	linker InvoiceLinker
	newID  func() string
}

// NewBuilder returns a Builder stamping entries with the system clock.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		clock: billing.SystemClock(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateBillingHistory builds the entry recording a charge of sub.
// It does not persist anything; see Store.
func (b *Builder) CreateBillingHistory(ctx context.Context, sub *billing.Subscription, transactionID string, status Status) (Entry, error) {
	if sub == nil {
		return Entry{}, billing.ErrNoSubscription
	}
	if !status.Valid() || status == StatusRefunded {
		return Entry{}, errors.Join(ErrInvalidStatus, fmt.Errorf("status %q", status))
	}
	if status == StatusPaid && transactionID == "" {
		return Entry{}, ErrMissingTransactionID
	}

	method := ""
	if sub.PaymentMethod != nil {
		method = sub.PaymentMethod.Tag()
	}

	e := Entry{
		ID:             b.newID(),
		SubscriptionID: sub.ID,
		Amount:         sub.Amount,
		Currency:       sub.Currency,
		Status:         status,
		PaymentMethod:  method,
		BillingDate:    b.clock.Now(),
		Description:    b.Description(sub.Plan, sub.BillingCycle),
		TransactionID:  transactionID,
	}

	if status == StatusPaid && b.linker != nil {
		url, err := b.linker.InvoiceURL(ctx, e)
		if err != nil {
			return Entry{}, errors.Join(ErrInvoiceLinkFailed, err)
		}
		e.InvoiceURL = url
	}
	return e, nil
}

// Refund builds a refunded entry reversing a paid one. The original entry is
// left as it is.
func (b *Builder) Refund(paid Entry) (Entry, error) {
	if paid.Status != StatusPaid {
		return Entry{}, ErrNotRefundable
	}
	return Entry{
		ID:             b.newID(),
		SubscriptionID: paid.SubscriptionID,
		Amount:         paid.Amount,
		Currency:       paid.Currency,
		Status:         StatusRefunded,
		PaymentMethod:  paid.PaymentMethod,
		BillingDate:    b.clock.Now(),
		Description:    "Refund: " + paid.Description,
		TransactionID:  paid.TransactionID,
		RefundOf:       paid.ID,
	}, nil
}

// Description renders e.g. "Premium Plan - yearly billing".
func (b *Builder) Description(plan billing.Plan, cycle billing.BillingCycle) string {
	// Casers are stateful and not safe for concurrent use.
	title := cases.Title(language.English).String(string(plan))
	return fmt.Sprintf("%s Plan - %s billing", title, cycle)
}

func validateEntry(e Entry) error {
	if e.ID == "" || e.SubscriptionID == "" {
		return errors.Join(ErrInvalidEntry, errors.New("id and subscription id are required"))
	}
	if !e.Status.Valid() {
		return errors.Join(ErrInvalidEntry, ErrInvalidStatus)
	}
	return nil
}

