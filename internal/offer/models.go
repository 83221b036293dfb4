package offer

import "time"

// TokenLength is the textual UUID-v4 length every offer token has. Handlers
// validate it before any storage lookup.
const TokenLength = 36

// Offer is a time-of-decision snapshot of an approved loan, keyed by an
// unguessable bearer token. Whoever holds the token can read and redeem the
// offer; no other credential exists for it.
type Offer struct {
	Token              string    `json:"-"`
	LoanAmount         float64   `json:"loanAmount"`
	InterestRate       float64   `json:"interestRate"`
	TenureMonths       int       `json:"tenureMonths"`
	IsExistingCustomer bool      `json:"isExisting"`
	PAN                string    `json:"pan"`
	Phone              string    `json:"phone"`
	CreatedAt          time.Time `json:"-"`
	// Consumed flips exactly once, when an application is created from the
	// offer. A consumed offer can still be read but never redeemed again.
	Consumed bool `json:"-"`
}

// ValidToken reports whether a candidate has the exact bearer-token shape.
func ValidToken(token string) bool {
	return len(token) == TokenLength
}
