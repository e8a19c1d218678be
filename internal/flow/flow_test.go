package flow

import (
	"errors"
	"testing"

	"collections-center/internal/accounts"
)

func testAccount() accounts.Account {
	return accounts.Account{
		AccountNumber: "ACC-001234",
		CustomerName:  "John Doe",
		Balance:       2500.00,
		PastDue:       450.00,
	}
}

func TestCreate_StartsIdle(t *testing.T) {
	st := NewStore()
	s := st.Create(testAccount())
	if s.ID == "" || s.State != StateVerifiedIdle {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestGet_UnknownSession(t *testing.T) {
	st := NewStore()
	if _, err := st.Get("nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCallTransitions(t *testing.T) {
	st := NewStore()
	s := st.Create(testAccount())

	got, err := st.StartCall(s.ID)
	if err != nil || got.State != StateInCall {
		t.Fatalf("start call: state=%v err=%v", got.State, err)
	}
	if _, err := st.StartCall(s.ID); err != ErrInvalidTransition {
		t.Fatalf("double start: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := st.StartPayment(s.ID); err != ErrInvalidTransition {
		t.Fatalf("payment during call: expected ErrInvalidTransition, got %v", err)
	}
	got, err = st.EndCall(s.ID)
	if err != nil || got.State != StateVerifiedIdle {
		t.Fatalf("end call: state=%v err=%v", got.State, err)
	}
	if _, err := st.EndCall(s.ID); err != ErrInvalidTransition {
		t.Fatalf("double end: expected ErrInvalidTransition, got %v", err)
	}
}

func TestPaymentTransitions(t *testing.T) {
	st := NewStore()
	s := st.Create(testAccount())

	if _, err := st.CancelPayment(s.ID); err != ErrInvalidTransition {
		t.Fatalf("cancel while idle: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := st.StartPayment(s.ID); err != nil {
		t.Fatalf("start payment: %v", err)
	}
	got, err := st.CancelPayment(s.ID)
	if err != nil || got.State != StateVerifiedIdle {
		t.Fatalf("cancel payment: state=%v err=%v", got.State, err)
	}
}

func TestCompletePayment_UpdatesBalances(t *testing.T) {
	st := NewStore()
	s := st.Create(testAccount())

	if _, err := st.StartPayment(s.ID); err != nil {
		t.Fatalf("start payment: %v", err)
	}
	got, err := st.CompletePayment(s.ID, 150.00)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.State != StateVerifiedIdle {
		t.Fatalf("expected idle after payment, got %v", got.State)
	}
	if got.Account.Balance != 2350.00 {
		t.Fatalf("expected balance 2350.00, got %v", got.Account.Balance)
	}
	if got.Account.PastDue != 300.00 {
		t.Fatalf("expected pastDue 300.00, got %v", got.Account.PastDue)
	}
}

func TestCompletePayment_PastDueClampedAtZero(t *testing.T) {
	st := NewStore()
	s := st.Create(testAccount())

	_, _ = st.StartPayment(s.ID)
	got, err := st.CompletePayment(s.ID, 500.00)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Account.PastDue != 0 {
		t.Fatalf("expected pastDue clamped to 0, got %v", got.Account.PastDue)
	}
}

func TestCompletePayment_AmountBound(t *testing.T) {
	st := NewStore()
	s := st.Create(testAccount())

	// Boundary: equal to balance is allowed.
	_, _ = st.StartPayment(s.ID)
	if _, err := st.CompletePayment(s.ID, 2500.00); err != nil {
		t.Fatalf("amount == balance must be allowed, got %v", err)
	}

	s2 := st.Create(testAccount())
	_, _ = st.StartPayment(s2.ID)
	if _, err := st.CompletePayment(s2.ID, 2500.01); !errors.Is(err, ErrAmountExceedsBalance) {
		t.Fatalf("amount just above balance must be rejected, got %v", err)
	}

	s3 := st.Create(testAccount())
	_, _ = st.StartPayment(s3.ID)
	if _, err := st.CompletePayment(s3.ID, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount must be rejected, got %v", err)
	}
}
