package accounts

// Account is a delinquent-account record as served to the portal.
//
// Records are seeded at process start and never mutated afterwards; payment
// postings in this demo only adjust the portal-session view, never the store.
type Account struct {
	AccountNumber   string  `json:"accountNumber"`
	CustomerName    string  `json:"customerName"`
	Balance         float64 `json:"balance"`
	PastDue         float64 `json:"pastDue"`
	DaysOverdue     int     `json:"daysOverdue"`
	LastPaymentDate string  `json:"lastPaymentDate"`
	MinimumPayment  float64 `json:"minimumPayment"`
	PhoneNumber     string  `json:"phoneNumber"`
	Email           string  `json:"email"`

	Status AccountStatus `json:"status"`

	// LastFourSSN is the lookup key. It is scrubbed before any record leaves
	// the verification service.
	LastFourSSN string `json:"lastFourSSN,omitempty"`
}

type AccountStatus string

const (
	AccountStatusCurrent     AccountStatus = "current"
	AccountStatusDelinquent  AccountStatus = "delinquent"
	AccountStatusArrangement AccountStatus = "arrangement"
)
