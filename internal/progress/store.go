package progress

import (
	"slices"
	"sync"
)

// Store keeps progress records. Implementations must remember the order in
// which users were first stored; All returns records in that order.
type Store interface {
	Get(userID string) (Record, bool)
	Put(rec Record)
	Delete(userID string) bool
	All() []Record
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	recs  map[string]Record
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

func (s *MemoryStore) Get(userID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[userID]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

func (s *MemoryStore) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[rec.UserID]; !ok {
		s.order = append(s.order, rec.UserID)
	}
	s.recs[rec.UserID] = rec.clone()
}

func (s *MemoryStore) Delete(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[userID]; !ok {
		return false
	}
	delete(s.recs, userID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == userID })
	return true
}

func (s *MemoryStore) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recs[id].clone())
	}
	return out
}
