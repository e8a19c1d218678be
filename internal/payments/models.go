package payments

// Method is how the customer pays. The portal UI submits "ach" for bank
// transfers; ParseMethod folds that into MethodBank.
type Method string

const (
	MethodCard  Method = "card"
	MethodBank  Method = "bank"
	MethodPhone Method = "phone"
)

func ParseMethod(s string) (Method, bool) {
	switch s {
	case "card":
		return MethodCard, true
	case "bank", "ach":
		return MethodBank, true
	case "phone":
		return MethodPhone, true
	default:
		return "", false
	}
}

// PhoneInstructions is returned for the phone method; no state changes.
type PhoneInstructions struct {
	PaymentLine string `json:"paymentLine"`
	Message     string `json:"message"`
}

// Result is the simulator outcome. Card/bank produce a confirmation; phone
// produces instructions only. Confirmation numbers are random and not
// guaranteed globally unique, and nothing is settled for real.
type Result struct {
	Success            bool    `json:"success"`
	Amount             float64 `json:"amount,omitempty"`
	Method             Method  `json:"method"`
	Timestamp          string  `json:"timestamp,omitempty"`
	ConfirmationNumber string  `json:"confirmationNumber,omitempty"`

	Instructions *PhoneInstructions `json:"instructions,omitempty"`
}

// PlanOption is one entry of the payment-option menu offered alongside the
// call: pay-in-full discount, fixed-term plans, or a settlement offer.
type PlanOption struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Months      int    `json:"months,omitempty"`

	Amount         float64 `json:"amount,omitempty"`
	MonthlyPayment float64 `json:"monthlyPayment,omitempty"`
	TotalAmount    float64 `json:"totalAmount,omitempty"`
	Discount       float64 `json:"discount,omitempty"`
	FinalAmount    float64 `json:"finalAmount,omitempty"`
	Savings        float64 `json:"savings,omitempty"`
}
