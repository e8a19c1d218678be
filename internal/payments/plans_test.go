package payments

import (
	"errors"
	"testing"
)

func TestPlanOptions_Menu(t *testing.T) {
	opts, err := PlanOptions(2500.00)
	if err != nil {
		t.Fatalf("plans: %v", err)
	}
	if len(opts) != 5 {
		t.Fatalf("expected 5 options, got %d", len(opts))
	}

	full := opts[0]
	if full.Type != "full_payment" || full.Discount != 250.00 || full.FinalAmount != 2250.00 {
		t.Fatalf("unexpected full-payment option: %+v", full)
	}

	wantMonthly := map[int]float64{3: 833.33, 6: 416.67, 12: 208.33}
	for _, o := range opts[1:4] {
		if o.Type != "payment_plan" {
			t.Fatalf("expected payment_plan, got %q", o.Type)
		}
		if got := wantMonthly[o.Months]; o.MonthlyPayment != got {
			t.Fatalf("%d months: expected %.2f, got %.2f", o.Months, got, o.MonthlyPayment)
		}
		if o.TotalAmount != 2500.00 {
			t.Fatalf("expected total 2500, got %v", o.TotalAmount)
		}
	}

	settlement := opts[4]
	if settlement.Type != "settlement" || settlement.Amount != 1500.00 || settlement.Savings != 1000.00 {
		t.Fatalf("unexpected settlement option: %+v", settlement)
	}
}

func TestPlanOptions_RejectsNonPositiveBalance(t *testing.T) {
	for _, balance := range []float64{0, -10} {
		if _, err := PlanOptions(balance); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("balance %v: expected ErrInvalidArgument, got %v", balance, err)
		}
	}
}
