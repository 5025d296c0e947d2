package ledger

import "errors"

var (
	ErrDuplicateEntry       = errors.New("ledger: billing history entry already recorded")
	ErrInvalidStatus        = errors.New("ledger: invalid billing status")
	ErrMissingTransactionID = errors.New("ledger: paid entry requires a transaction id")
	ErrNotRefundable        = errors.New("ledger: only paid entries can be refunded")
	ErrInvalidEntry         = errors.New("ledger: invalid billing history entry")
	ErrStoreFailure         = errors.New("ledger: store operation failed")
	ErrInvoiceLinkFailed    = errors.New("ledger: failed to build invoice link")
	ErrInvalidS3Config      = errors.New("ledger: s3 bucket and region are required")
	ErrUnknownDriver        = errors.New("ledger: unknown store driver")
)
