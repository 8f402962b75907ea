package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a unit of work against the store.
// Postgres runs it inside one database transaction; stores without
// transactions run it directly.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
