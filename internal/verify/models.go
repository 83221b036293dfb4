package verify

// Result is the transient outcome of a verification check. It is returned to
// the caller and never persisted. A mismatch is an expected outcome, not an
// error.
type Result struct {
	Verified bool     `json:"success"`
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
	Profile  *Profile `json:"verifiedData,omitempty"`
}

// Profile is the verified customer view returned after a successful PAN
// check so the caller can pre-fill subsequent steps.
type Profile struct {
	Name         string `json:"name"`
	DOB          string `json:"dob"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	FaceImageURL string `json:"face_image_url"`
}

// SalarySlipInput carries the on-file contact details plus whatever the
// external OCR collaborator managed to extract from the payslip. Extracted
// fields may be empty; OCR is allowed to be imperfect.
type SalarySlipInput struct {
	DBPhone          string
	DBAddress        string
	LoanAmount       float64
	ExtractedSalary  float64
	ExtractedPhone   string
	ExtractedAddress string
}

// Salary check statuses.
const (
	SalaryVerified = "VERIFIED"
	SalaryFailed   = "FAILED"
)

// SalaryResult is the payslip cross-check outcome. On VERIFIED it carries the
// values downstream steps should trust.
type SalaryResult struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	VerifiedSalary  float64 `json:"verifiedSalary,omitempty"`
	VerifiedPhone   string  `json:"verifiedPhone,omitempty"`
	VerifiedAddress string  `json:"verifiedAddress,omitempty"`
}

// FinalDetailsInput is the full applicant form re-checked field by field
// against the customer record just before submission.
type FinalDetailsInput struct {
	PAN           string
	Email         string
	Phone         string
	DOB           string
	AccountNumber string
	IFSCCode      string
}
