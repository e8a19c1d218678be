package flow

import (
	"errors"

	"collections-center/internal/accounts"
)

// State is the portal-session position in the collections flow.
// A session is created already verified; "unverified" is what a caller is
// before any session exists.
type State string

const (
	StateVerifiedIdle State = "verified_idle"
	StateInCall       State = "verified_in_call"
	StatePaying       State = "verified_paying"
)

var (
	ErrInvalidTransition    = errors.New("flow: invalid transition")
	ErrAmountExceedsBalance = errors.New("flow: amount exceeds balance")
	ErrInvalidAmount        = errors.New("flow: invalid amount")
)

// Session tracks one verified visitor's flow state and their working view of
// the account. Payment completion updates this view optimistically; the
// underlying account store is never reconciled in this demo.
type Session struct {
	ID      string           `json:"id"`
	State   State            `json:"state"`
	Account accounts.Account `json:"account"`
}

func (s *Session) startCall() error {
	if s.State != StateVerifiedIdle {
		return ErrInvalidTransition
	}
	s.State = StateInCall
	return nil
}

func (s *Session) endCall() error {
	if s.State != StateInCall {
		return ErrInvalidTransition
	}
	s.State = StateVerifiedIdle
	return nil
}

func (s *Session) startPayment() error {
	if s.State != StateVerifiedIdle {
		return ErrInvalidTransition
	}
	s.State = StatePaying
	return nil
}

func (s *Session) cancelPayment() error {
	if s.State != StatePaying {
		return ErrInvalidTransition
	}
	s.State = StateVerifiedIdle
	return nil
}

// completePayment applies the paid amount to the local account view.
// Boundary: amount equal to the remaining balance is allowed; anything above
// it is rejected. Past-due never goes below zero.
func (s *Session) completePayment(amount float64) error {
	if s.State != StatePaying {
		return ErrInvalidTransition
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > s.Account.Balance {
		return ErrAmountExceedsBalance
	}

	s.Account.Balance -= amount
	s.Account.PastDue -= amount
	if s.Account.PastDue < 0 {
		s.Account.PastDue = 0
	}
	s.State = StateVerifiedIdle
	return nil
}
