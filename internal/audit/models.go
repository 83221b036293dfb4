package audit

import "time"

// Action names the pipeline step an event records.
type Action string

const (
	ActionOTPSent              Action = "otp.sent"
	ActionOTPVerified          Action = "otp.verified"
	ActionPANVerified          Action = "pan.verified"
	ActionBankVerified         Action = "bank.verified"
	ActionSalaryVerified       Action = "salary.verified"
	ActionFinalVerified        Action = "final.verified"
	ActionOfferCreated         Action = "offer.created"
	ActionOfferRedeemed        Action = "offer.redeemed"
	ActionApplicationSubmitted Action = "application.submitted"
)

// Event is one append-only audit record. SubjectHash is the salted one-way
// hash of the identifier involved (email, phone, or PAN); the raw value
// never enters the audit trail.
type Event struct {
	Action      Action    `json:"action"`
	SubjectHash string    `json:"subject_hash"`
	Outcome     string    `json:"outcome"`
	Timestamp   time.Time `json:"timestamp"`
}
