package accounts

import (
	"context"
	"testing"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo(SeedAccounts()))
}

func TestVerify_UnknownKeyIsNotFound(t *testing.T) {
	svc := newTestService()

	for _, dob := range []string{"", "1980-01-01"} {
		_, err := svc.Verify(context.Background(), VerifyRequest{LastFourSSN: "0000", DateOfBirth: dob})
		if err != ErrNotFound {
			t.Fatalf("dob=%q: expected ErrNotFound, got %v", dob, err)
		}
	}
}

func TestVerify_MissingDateOfBirth(t *testing.T) {
	svc := newTestService()

	_, err := svc.Verify(context.Background(), VerifyRequest{LastFourSSN: "1234"})
	if err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestVerify_ByLastFour(t *testing.T) {
	svc := newTestService()

	a, err := svc.Verify(context.Background(), VerifyRequest{LastFourSSN: "1234", DateOfBirth: "1980-01-01"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.AccountNumber != "ACC-001234" {
		t.Fatalf("expected ACC-001234, got %q", a.AccountNumber)
	}
	if a.Balance != 2500.00 || a.PastDue != 450.00 {
		t.Fatalf("unexpected amounts: balance=%v pastDue=%v", a.Balance, a.PastDue)
	}
	if a.LastFourSSN != "" {
		t.Fatalf("expected lookup key to be scrubbed")
	}
}

func TestVerify_ByAccountNumber(t *testing.T) {
	svc := newTestService()

	a, err := svc.Verify(context.Background(), VerifyRequest{AccountNumber: "ACC-005678", DateOfBirth: "1975-03-20"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.CustomerName != "Jane Smith" {
		t.Fatalf("expected Jane Smith, got %q", a.CustomerName)
	}
}
