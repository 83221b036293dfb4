package customer

import (
	"context"

	dErrors "smartfinance/pkg/domain-errors"
)

// ErrNotFound keeps PAN lookup misses consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "PAN not found in our records")

// Store is the read-only lookup over the bank's customer book. Interface
// driven so the in-memory seed and the Postgres table swap without rewiring
// the verifiers.
type Store interface {
	FindByPAN(ctx context.Context, pan string) (Record, error)
}
