package accounts

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("account not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service verifies a caller-supplied lookup key against the account store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type VerifyRequest struct {
	AccountNumber string `json:"accountNumber"`
	DateOfBirth   string `json:"dateOfBirth"`
	LastFourSSN   string `json:"lastFourSSN"`
}

// Verify matches the last-four key first, then the full account number,
// and strips the lookup key from the returned record.
//
// Known gap carried over from the original flow: DateOfBirth is only checked
// for presence, never compared against stored data.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (Account, error) {
	if s.repo == nil {
		return Account{}, errors.New("accounts: repository not configured")
	}

	a, ok, err := s.repo.FindByKey(ctx, req.LastFourSSN)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		a, ok, err = s.repo.FindByKey(ctx, req.AccountNumber)
		if err != nil {
			return Account{}, err
		}
	}
	if !ok {
		return Account{}, ErrNotFound
	}

	if req.DateOfBirth == "" {
		return Account{}, ErrInvalidArgument
	}

	a.LastFourSSN = ""
	return a, nil
}
