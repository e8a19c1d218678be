package flow

import (
	"errors"
	"sync"

	"collections-center/internal/accounts"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("flow: session not found")

// Store keeps portal sessions in process memory, guarded by a single mutex.
// Transitions happen under the lock; callers always receive copies.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	newID func() string
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		newID:    uuid.NewString,
	}
}

// Create opens a session for a freshly verified account in idle state.
func (st *Store) Create(account accounts.Account) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{
		ID:      st.newID(),
		State:   StateVerifiedIdle,
		Account: account,
	}
	st.sessions[s.ID] = s
	return *s
}

func (st *Store) Get(id string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *s, nil
}

func (st *Store) StartCall(id string) (Session, error) {
	return st.transition(id, (*Session).startCall)
}

func (st *Store) EndCall(id string) (Session, error) {
	return st.transition(id, (*Session).endCall)
}

func (st *Store) StartPayment(id string) (Session, error) {
	return st.transition(id, (*Session).startPayment)
}

func (st *Store) CancelPayment(id string) (Session, error) {
	return st.transition(id, (*Session).cancelPayment)
}

func (st *Store) CompletePayment(id string, amount float64) (Session, error) {
	return st.transition(id, func(s *Session) error {
		return s.completePayment(amount)
	})
}

func (st *Store) transition(id string, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if err := fn(s); err != nil {
		return Session{}, err
	}
	return *s, nil
}
