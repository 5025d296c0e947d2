// Package ledger records billing history.
//
// Entries are immutable values built by Builder from a subscription and a
// payment outcome, then appended to a Store. A mistake is corrected by
// appending another entry (see Builder.Refund), never by editing one.
//
// Stores:
//
//   - NewMemoryStore for tests and single-process use.
//   - NewRedisStore keeps JSON entries in a list per subscription.
//   - NewPostgresStore writes to an append-only billing_history table created
//     by Migrate.
//
// Every store rejects an entry whose ID was already recorded with
// ErrDuplicateEntry and lists entries in append order.
//
// Paid entries get an invoice URL when the Builder has an InvoiceLinker:
// StaticLinker for a fixed host, or an S3 linker issuing presigned GET links.
package ledger
