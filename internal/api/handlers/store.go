package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// storedResult keeps one completed simulation's ledger for later retrieval.
type storedResult struct {
	Strategy  string
	Ledger    any
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ResultStore is the in-memory, TTL'd home for completed simulation ledgers,
// keyed by the id returned in simulation responses. It exists so a client
// can re-fetch a ledger without re-running the simulation; it is not a
// persistence layer.
type ResultStore struct {
	mu    sync.RWMutex
	store map[string]*storedResult
	ttl   time.Duration
}

// NewResultStore creates a store. A non-positive ttl defaults to one hour.
func NewResultStore(ttl time.Duration) *ResultStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &ResultStore{
		store: make(map[string]*storedResult),
		ttl:   ttl,
	}
	go s.cleanup()
	return s
}

// Put stores a ledger and returns its fresh id.
func (s *ResultStore) Put(strategy string, ledger any) string {
	id := uuid.NewString()
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[id] = &storedResult{
		Strategy:  strategy,
		Ledger:    ledger,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	return id
}

// Get returns a stored ledger if present and unexpired.
func (s *ResultStore) Get(id string) (strategy string, ledger any, createdAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, exists := s.store[id]
	if !exists || time.Now().After(r.ExpiresAt) {
		return "", nil, time.Time{}, false
	}
	return r.Strategy, r.Ledger, r.CreatedAt, true
}

func (s *ResultStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for id, r := range s.store {
			if now.After(r.ExpiresAt) {
				delete(s.store, id)
			}
		}
		s.mu.Unlock()
	}
}
