package journal

import "time"

// Entry is an append-only activity record.
//
// The journal is best-effort observability, not a ledger: callers must never
// fail a request because an entry could not be written. By default entries
// live in memory only, so the process still holds no durable state; Postgres
// persistence is opt-in via DB_* configuration.
type Entry struct {
	ID string `json:"id" db:"id"`

	Type EntryType `json:"type" db:"type"`

	// Ref is the business identifier: call id for call entries, confirmation
	// number for payment entries.
	Ref string `json:"ref" db:"ref"`

	// Amount is the dollar amount associated with the entry (amount owed for
	// calls, amount paid for payments).
	Amount float64 `json:"amount" db:"amount"`

	// Detail is optional JSON for debugging.
	Detail string `json:"detail,omitempty" db:"detail"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EntryType string

const (
	EntryTypeCallInitiated EntryType = "call_initiated"
	EntryTypeCallEnded     EntryType = "call_ended"
	EntryTypePayment       EntryType = "payment"
)
