// Package underwriting turns (credit score, requested amount, salary) into an
// offer decision. Pure domain logic: no I/O, no clock, no mutable state.
package underwriting

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Decision statuses.
const (
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Decision is the engine's verdict. Rule names the guard that fired so tests
// and ops can audit exactly which branch decided.
type Decision struct {
	Status           string  `json:"status"`
	Amount           float64 `json:"amount,omitempty"`
	InterestRate     float64 `json:"interest,omitempty"`
	TenureMonths     int     `json:"tenure,omitempty"`
	SpecialOffer     bool    `json:"isSpecialOffer,omitempty"`
	PreApprovedLimit float64 `json:"preApprovedLimit,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	Rule             string  `json:"-"`
}

// Approved reports whether the decision grants an offer.
func (d Decision) Approved() bool { return d.Status == StatusApproved }

// input bundles the three decision inputs plus the derived score tier values
// so guards stay single-expression.
type input struct {
	score  int
	amount float64
	salary float64
	limit  float64
	rate   float64
}

// rule is one guard/decision pair. Rules are evaluated strictly in order;
// the first matching guard decides.
type rule struct {
	name   string
	guard  func(in input) bool
	decide func(in input) Decision
}

// rules is the complete, ordered decision table. Reordering entries changes
// underwriting behavior; every entry is pinned by a unit test.
var rules = []rule{
	{
		name:  "hard-ceiling",
		guard: func(in input) bool { return in.amount > 500000 },
		decide: func(in input) Decision {
			return Decision{
				Status: StatusRejected,
				Reason: "The maximum loan amount we can offer is 500,000. Please try a lower amount.",
			}
		},
	},
	{
		// Small loans bypass score-based underwriting entirely.
		name:  "small-loan-special",
		guard: func(in input) bool { return in.amount < 100000 },
		decide: func(in input) Decision {
			return Decision{
				Status:       StatusApproved,
				Amount:       in.amount,
				InterestRate: 13.0,
				TenureMonths: 24,
				SpecialOffer: true,
			}
		},
	},
	{
		name:  "minimum-score",
		guard: func(in input) bool { return in.score < 700 },
		decide: func(in input) Decision {
			return Decision{
				Status: StatusRejected,
				Reason: fmt.Sprintf("Your credit score of %d is below our minimum requirement of 700.", in.score),
			}
		},
	},
	{
		// Large loans get a flat surcharge and long tenure regardless of the
		// pre-approved limit.
		name:  "large-loan-surcharge",
		guard: func(in input) bool { return in.amount > 300000 },
		decide: func(in input) Decision {
			return Decision{
				Status:           StatusApproved,
				Amount:           in.amount,
				InterestRate:     in.rate + 0.5,
				TenureMonths:     60,
				PreApprovedLimit: in.limit,
			}
		},
	},
	{
		name:  "far-above-limit",
		guard: func(in input) bool { return in.amount > in.limit*2 },
		decide: func(in input) Decision {
			return Decision{
				Status: StatusRejected,
				Reason: fmt.Sprintf("The requested amount of %.0f is significantly higher than your pre-approved limit of %.0f.",
					in.amount, in.limit),
				PreApprovedLimit: in.limit,
			}
		},
	},
	{
		name:  "within-limit-discount",
		guard: func(in input) bool { return in.amount <= in.limit },
		decide: func(in input) Decision {
			return Decision{
				Status:           StatusApproved,
				Amount:           in.amount,
				InterestRate:     in.rate - 1.0,
				TenureMonths:     36,
				PreApprovedLimit: in.limit,
			}
		},
	},
	{
		// Between 1x and 2x the limit: affordability decides, at the
		// undiscounted base rate over 48 months.
		name:  "stretch-emi-check",
		guard: func(in input) bool { return in.amount <= in.limit*2 },
		decide: func(in input) Decision {
			const tenure = 48
			emi := CalculateEMI(in.amount, in.rate, tenure)
			if emi <= in.salary*0.50 {
				return Decision{
					Status:           StatusApproved,
					Amount:           in.amount,
					InterestRate:     in.rate,
					TenureMonths:     tenure,
					PreApprovedLimit: in.limit,
				}
			}
			return Decision{
				Status: StatusRejected,
				Reason: fmt.Sprintf("The estimated EMI for this loan is %.0f, which exceeds 50%% of your reported monthly salary of %.0f. For your financial well-being, we cannot proceed.",
					emi, in.salary),
				PreApprovedLimit: in.limit,
			}
		},
	},
	{
		// Unreachable given the guards above; terminates the table.
		name:  "unprocessable",
		guard: func(in input) bool { return true },
		decide: func(in input) Decision {
			return Decision{
				Status:           StatusRejected,
				Reason:           "We are unable to process the request with the provided details.",
				PreApprovedLimit: in.limit,
			}
		},
	},
}

// Decide walks the rule table in order and returns the first match.
func Decide(creditScore int, requestedAmount, salary float64) Decision {
	in := input{
		score:  creditScore,
		amount: requestedAmount,
		salary: salary,
		limit:  PreApprovedLimit(creditScore),
		rate:   baseRate(creditScore),
	}

	for _, r := range rules {
		if r.guard(in) {
			d := r.decide(in)
			d.Rule = r.name
			return d
		}
	}
	// The table always terminates via the fallback rule.
	return Decision{Status: StatusRejected, Reason: "We are unable to process the request with the provided details."}
}

// PreApprovedLimit maps a credit score to its lending ceiling tier.
func PreApprovedLimit(creditScore int) float64 {
	switch {
	case creditScore < 700:
		return 0
	case creditScore < 750:
		return 150000
	case creditScore < 800:
		return 300000
	default:
		return 500000
	}
}

// baseRate maps a credit score to the undiscounted annual rate. The sub-700
// tier never reaches a rate-bearing decision; its value only exists so the
// table stays total.
func baseRate(creditScore int) float64 {
	switch {
	case creditScore >= 800:
		return 10.5
	case creditScore >= 750:
		return 12.0
	case creditScore >= 700:
		return 13.5
	default:
		return 14.0
	}
}

// CalculateEMI computes the equal monthly installment for an amortizing loan,
// rounded to 2 decimal places. A zero or negative monthly rate degrades to
// straight-line principal/months to avoid dividing by zero.
func CalculateEMI(principal, annualRatePercent float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / 12
	if r <= 0 {
		return round2(principal / float64(months))
	}
	factor := math.Pow(1+r, float64(months))
	return round2(principal * r * factor / (factor - 1))
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
