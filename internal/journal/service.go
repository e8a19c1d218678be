package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for journal entries.
//
// It MUST be append-only. No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, typ EntryType) ([]Entry, error)
}

var ErrInvalidEntry = errors.New("journal: invalid entry")

// Service records portal activity.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Append(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return errors.New("journal: repository not configured")
	}
	if e.Type == "" || e.Ref == "" {
		return ErrInvalidEntry
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

func (s *Service) CallInitiated(ctx context.Context, callID string, amountOwed float64, detail string) error {
	return s.Append(ctx, Entry{Type: EntryTypeCallInitiated, Ref: callID, Amount: amountOwed, Detail: detail})
}

func (s *Service) CallEnded(ctx context.Context, roomName string) error {
	return s.Append(ctx, Entry{Type: EntryTypeCallEnded, Ref: roomName})
}

func (s *Service) PaymentConfirmed(ctx context.Context, confirmation string, amount float64, detail string) error {
	return s.Append(ctx, Entry{Type: EntryTypePayment, Ref: confirmation, Amount: amount, Detail: detail})
}
