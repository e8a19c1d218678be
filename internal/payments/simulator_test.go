package payments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"collections-center/internal/journal"
)

func newTestSimulator() *Simulator {
	s := NewSimulator(0, nil)
	s.clock = func() time.Time { return time.Unix(1700000000, 0) }
	s.newCode = func() string { return "CONF-TEST12345" }
	return s
}

func TestSubmit_CardConfirmation(t *testing.T) {
	s := newTestSimulator()

	res, err := s.Submit(context.Background(), SubmitRequest{Amount: 150.00, Method: "card"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Success || res.Amount != 150.00 || res.Method != MethodCard {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ConfirmationNumber != "CONF-TEST12345" {
		t.Fatalf("unexpected confirmation %q", res.ConfirmationNumber)
	}
	if res.Timestamp != "2023-11-14T22:13:20Z" {
		t.Fatalf("unexpected timestamp %q", res.Timestamp)
	}
}

func TestSubmit_BankAliasAch(t *testing.T) {
	s := newTestSimulator()

	res, err := s.Submit(context.Background(), SubmitRequest{Amount: 75, Method: "ach"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Method != MethodBank {
		t.Fatalf("expected bank, got %q", res.Method)
	}
}

func TestSubmit_PhoneReturnsInstructionsOnly(t *testing.T) {
	s := newTestSimulator()

	// No amount required; nothing is charged on the phone path.
	res, err := s.Submit(context.Background(), SubmitRequest{Method: "phone"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Success || res.ConfirmationNumber != "" {
		t.Fatalf("phone method must not confirm anything: %+v", res)
	}
	if res.Instructions == nil || res.Instructions.PaymentLine != "1-800-PAY-DEBT" {
		t.Fatalf("unexpected instructions: %+v", res.Instructions)
	}
}

func TestSubmit_RejectsInvalid(t *testing.T) {
	s := newTestSimulator()

	if _, err := s.Submit(context.Background(), SubmitRequest{Amount: 10, Method: "crypto"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for method, got %v", err)
	}
	if _, err := s.Submit(context.Background(), SubmitRequest{Amount: 0, Method: "card"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for amount, got %v", err)
	}
}

func TestSubmit_DelayHonorsContext(t *testing.T) {
	s := NewSimulator(time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Submit(ctx, SubmitRequest{Amount: 10, Method: "card"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSubmit_JournalsConfirmation(t *testing.T) {
	repo := journal.NewMemoryRepo()
	s := NewSimulator(0, journal.NewService(repo))

	res, err := s.Submit(context.Background(), SubmitRequest{Amount: 150, Method: "card"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	entries, err := repo.List(context.Background(), journal.EntryTypePayment)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Ref != res.ConfirmationNumber || entries[0].Amount != 150 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestRandomConfirmationCode_Shape(t *testing.T) {
	code := randomConfirmationCode()
	if !strings.HasPrefix(code, "CONF-") || len(code) != len("CONF-")+9 {
		t.Fatalf("unexpected code %q", code)
	}
	if code == randomConfirmationCode() {
		t.Fatalf("expected different codes across calls")
	}
}
