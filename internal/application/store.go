package application

import (
	"context"

	dErrors "smartfinance/pkg/domain-errors"
)

// Store persists loan applications. Append-only: there is no update or
// delete path.
type Store interface {
	// Append saves a new application.
	Append(ctx context.Context, app LoanApplication) error
	// LatestByPAN returns the most recently submitted application for a
	// PAN, or CodeNotFound when the PAN has none.
	LatestByPAN(ctx context.Context, pan string) (Status, error)
}

var errNoApplications = dErrors.New(dErrors.CodeNotFound, "No application found for this PAN.")
