package ledger

import (
	"context"
	"sync"
)

// Store persists accounts. The ledger serialises access per account, so a
// Store only has to make a single Put of several accounts all-or-nothing.
type Store interface {
	// Get returns ErrNotFound when the account does not exist.
	Get(ctx context.Context, userID string) (Account, error)
	// Insert returns ErrAlreadyExists when the account exists.
	Insert(ctx context.Context, acct Account) error
	// Put upserts every account atomically.
	Put(ctx context.Context, accts ...Account) error
	// Delete returns ErrNotFound when the account does not exist.
	Delete(ctx context.Context, userID string) error
}

// MemoryStore keeps accounts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	accts map[string]Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accts: make(map[string]Account)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accts[userID]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) Insert(_ context.Context, acct Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accts[acct.UserID]; ok {
		return ErrAlreadyExists
	}
	s.accts[acct.UserID] = acct
	return nil
}

func (s *MemoryStore) Put(_ context.Context, accts ...Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range accts {
		s.accts[a.UserID] = a
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accts[userID]; !ok {
		return ErrNotFound
	}
	delete(s.accts, userID)
	return nil
}

// Len reports how many accounts are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accts)
}
