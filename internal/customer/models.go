package customer

// Record is the immutable reference profile keyed by PAN. This pipeline never
// creates or mutates records; they come from the bank's book of accounts.
type Record struct {
	PAN             string
	FullName        string
	DOB             string // YYYY-MM-DD
	Email           string
	Phone           string
	Address         string
	AccountNumber   string
	IFSCCode        string
	ProfileImageURL string
}
