package offer

import (
	"context"

	dErrors "smartfinance/pkg/domain-errors"
)

// Store persists offers keyed by bearer token.
type Store interface {
	// Create saves a new offer under its token.
	Create(ctx context.Context, o Offer) error
	// Get returns the offer for a token, consumed or not.
	// Unknown tokens yield CodeNotFound.
	Get(ctx context.Context, token string) (Offer, error)
	// Consume atomically marks an offer redeemed and returns it. Exactly
	// one caller wins per token; later callers get CodeConflict. Unknown
	// tokens yield CodeNotFound.
	Consume(ctx context.Context, token string) (Offer, error)
}

var (
	errOfferNotFound = dErrors.New(dErrors.CodeNotFound, "Offer not found.")
	errOfferConsumed = dErrors.New(dErrors.CodeConflict, "Offer has already been used.")
)
