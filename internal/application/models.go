package application

import "time"

// StatusSubmitted is the status every new application starts in. Later
// transitions (final approval, final rejection) are made by back-office
// systems outside this service.
const StatusSubmitted = "SUBMITTED"

// PersonalDetails is the applicant section of the submission form.
type PersonalDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	DOB   string `json:"dob"`
	Phone string `json:"phone"`
}

// BankDetails is the account section of the submission form.
type BankDetails struct {
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	PANCard       string `json:"panCard"`
}

// GuarantorDetails names the applicant's guarantor.
type GuarantorDetails struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// FormData is the completed applicant form exactly as the front end sends it.
type FormData struct {
	Personal  PersonalDetails  `json:"personal"`
	Bank      BankDetails      `json:"bank"`
	Guarantor GuarantorDetails `json:"guarantor"`
}

// LoanDetails are the accepted terms at submission time.
type LoanDetails struct {
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Tenure int     `json:"tenure"`
}

// LoanApplication is one submitted application. Append-only; rows are never
// updated or deleted by this service.
type LoanApplication struct {
	ApplicationID  string      `json:"applicationId"`
	PAN            string      `json:"-"`
	Status         string      `json:"status"`
	SubmissionDate time.Time   `json:"submissionDate"`
	Form           FormData    `json:"-"`
	Loan           LoanDetails `json:"-"`
}

// Status is the read-path projection returned by the status lookup.
type Status struct {
	ApplicationID  string    `json:"application_id"`
	Status         string    `json:"application_status"`
	SubmissionDate time.Time `json:"submission_date"`
}
