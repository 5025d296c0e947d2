package ledger

import (
	"context"
	"embed"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/billingkit/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the billing_history table. An empty table name keeps the
// goose default version table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, versionTable string, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, pg.Migrations{FS: migrations, Dir: "migrations", Table: versionTable}, log)
}

const (
	insertEntrySQL = `
INSERT INTO billing_history
    (id, subscription_id, amount, currency, status, payment_method,
     billing_date, description, invoice_url, transaction_id, refund_of)
VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11)`

	listEntriesSQL = `
SELECT id, subscription_id, amount::text, currency, status, payment_method,
       billing_date, description, invoice_url, transaction_id, refund_of
FROM billing_history
WHERE subscription_id = $1
ORDER BY seq`
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store writing to the billing_history table.
// Run Migrate first.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("ledger: postgres pool is required")
	}
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Append(ctx context.Context, e Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, insertEntrySQL,
		e.ID, e.SubscriptionID, e.Amount.String(), e.Currency, string(e.Status), e.PaymentMethod,
		e.BillingDate, e.Description, e.InvoiceURL, e.TransactionID, e.RefundOf,
	)
	if pg.IsDuplicateKeyError(err) {
		return ErrDuplicateEntry
	}
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *postgresStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, listEntriesSQL, subscriptionID)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			amount string
			status string
		)
		if err := rows.Scan(&e.ID, &e.SubscriptionID, &amount, &e.Currency, &status, &e.PaymentMethod,
			&e.BillingDate, &e.Description, &e.InvoiceURL, &e.TransactionID, &e.RefundOf); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		e.Status = Status(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return entries, nil
}
