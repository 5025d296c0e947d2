package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the settlement state of a billing history entry.
type Status string

const (
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusPending  Status = "pending"
	StatusRefunded Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusPending, StatusRefunded:
		return true
	}
	return false
}

// Entry is an immutable billing history record. Corrections are new entries.
type Entry struct {
	ID             string          `json:"id"`
	SubscriptionID string          `json:"subscription_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Status         Status          `json:"status"`
	PaymentMethod  string          `json:"payment_method"`
	BillingDate    time.Time       `json:"billing_date"`
	Description    string          `json:"description"`
	InvoiceURL     string          `json:"invoice_url,omitempty"` // only for paid entries
	TransactionID  string          `json:"transaction_id,omitempty"`
	RefundOf       string          `json:"refund_of,omitempty"` // id of the refunded entry
}
