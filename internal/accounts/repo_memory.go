package accounts

import (
	"context"
	"sync"
)

// Repository abstracts account lookup so tests can substitute fixtures
// without touching process state.
//
// Lookups match either the last-four digits or the full account number.
type Repository interface {
	FindByKey(ctx context.Context, key string) (Account, bool, error)
}

// MemoryRepo is the read-only in-memory account store. Safe for concurrent
// reads; nothing writes after seeding.
type MemoryRepo struct {
	mu         sync.RWMutex
	byLastFour map[string]Account
	byNumber   map[string]Account
}

func NewMemoryRepo(seed []Account) *MemoryRepo {
	r := &MemoryRepo{
		byLastFour: make(map[string]Account, len(seed)),
		byNumber:   make(map[string]Account, len(seed)),
	}
	for _, a := range seed {
		if a.LastFourSSN != "" {
			r.byLastFour[a.LastFourSSN] = a
		}
		if a.AccountNumber != "" {
			r.byNumber[a.AccountNumber] = a
		}
	}
	return r
}

func (r *MemoryRepo) FindByKey(ctx context.Context, key string) (Account, bool, error) {
	_ = ctx
	if key == "" {
		return Account{}, false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.byLastFour[key]; ok {
		return a, true, nil
	}
	if a, ok := r.byNumber[key]; ok {
		return a, true, nil
	}
	return Account{}, false, nil
}

// SeedAccounts returns the demo fixtures the portal ships with.
func SeedAccounts() []Account {
	return []Account{
		{
			AccountNumber:   "ACC-001234",
			CustomerName:    "John Doe",
			Balance:         2500.00,
			PastDue:         450.00,
			DaysOverdue:     45,
			LastPaymentDate: "2024-06-15",
			MinimumPayment:  150.00,
			PhoneNumber:     "+1234567890",
			Email:           "john.doe@example.com",
			Status:          AccountStatusDelinquent,
			LastFourSSN:     "1234",
		},
		{
			AccountNumber:   "ACC-005678",
			CustomerName:    "Jane Smith",
			Balance:         1200.00,
			PastDue:         200.00,
			DaysOverdue:     30,
			LastPaymentDate: "2024-07-01",
			MinimumPayment:  75.00,
			PhoneNumber:     "+1987654321",
			Email:           "jane.smith@example.com",
			Status:          AccountStatusDelinquent,
			LastFourSSN:     "5678",
		},
	}
}
