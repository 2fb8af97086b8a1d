package gateway

import "context"

// TransactionObject is the opaque handle of an open database transaction.
type TransactionObject interface{}

// TransactionManager runs a function inside a single atomic unit (Unit of Work).
// Returning an error from fn rolls everything back.
type TransactionManager interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionKeyType avoids key collisions in the context.
type TransactionKeyType string

const TransactionKey TransactionKeyType = "transaction"
