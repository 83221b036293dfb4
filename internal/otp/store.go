package otp

import (
	"context"
	"time"
)

// Store holds live one-time codes keyed by identifier.
//
// VerifyAndConsume must be atomic per key: two concurrent verifications of
// the same code must not both succeed. Put replaces any live record for the
// identifier, so re-sending is idempotent from the caller's view.
type Store interface {
	Put(ctx context.Context, identifier string, rec Record) error
	// VerifyAndConsume deletes the record and returns true only when a live,
	// unexpired record exists with exactly this code. All other cases
	// (missing, expired, mismatch) return false without mutating state.
	VerifyAndConsume(ctx context.Context, identifier, code string, now time.Time) (bool, error)
}
