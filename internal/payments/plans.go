package payments

import (
	"fmt"
	"math"
)

// planTermsMonths are the fixed-term plans offered by the agent.
var planTermsMonths = []int{3, 6, 12}

const (
	fullPaymentDiscount = 0.10
	settlementRate      = 0.60
)

// PlanOptions builds the payment-option menu for a balance: pay-in-full with
// a 10% discount, 3/6/12-month plans, and a one-time settlement at 60%.
// Pure calculation; nothing is persisted or offered bindingly.
func PlanOptions(balance float64) ([]PlanOption, error) {
	if balance <= 0 {
		return nil, fmt.Errorf("%w: balance must be positive", ErrInvalidArgument)
	}

	out := make([]PlanOption, 0, len(planTermsMonths)+2)

	out = append(out, PlanOption{
		Type:        "full_payment",
		Description: "Pay in full today with 10% discount",
		Amount:      round2(balance),
		Discount:    round2(balance * fullPaymentDiscount),
		FinalAmount: round2(balance * (1 - fullPaymentDiscount)),
	})

	for _, months := range planTermsMonths {
		out = append(out, PlanOption{
			Type:           "payment_plan",
			Description:    fmt.Sprintf("%d-month payment plan", months),
			Months:         months,
			MonthlyPayment: round2(balance / float64(months)),
			TotalAmount:    round2(balance),
		})
	}

	out = append(out, PlanOption{
		Type:        "settlement",
		Description: "One-time settlement offer",
		Amount:      round2(balance * settlementRate),
		Savings:     round2(balance * (1 - settlementRate)),
	})

	return out, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
