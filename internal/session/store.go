// Package session keeps uploaded analysis results in memory, one immutable
// result set per session. Nothing is persisted: a session lives for its
// TTL or until capacity pressure evicts it, matching the dashboard's
// one-result-set-per-visit model.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"acutrace/internal/ingest"
)

type entry struct {
	result    *ingest.AnalysisResult
	expiresAt time.Time
}

// Store is a bounded in-memory session store with TTL expiry.
type Store struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	sessions   map[string]*entry

	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// New creates a store holding at most maxEntries sessions, each expiring
// ttl after it was stored.
func New(maxEntries int, ttl time.Duration) *Store {
	return &Store{
		maxEntries:  maxEntries,
		ttl:         ttl,
		sessions:    make(map[string]*entry),
		stopCleanup: make(chan struct{}),
	}
}

// Put stores a result under a fresh session id. When the store is full the
// session closest to expiry is evicted to make room.
func (s *Store) Put(result *ingest.AnalysisResult) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.sessions[id] = &entry{
		result:    result,
		expiresAt: time.Now().Add(s.ttl),
	}
	return id
}

// Get returns the stored result for id. Expired sessions are misses and
// are removed on access. Callers must treat the result as read-only; it is
// shared between requests.
func (s *Store) Get(id string) (*ingest.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return e.result, true
}

// Delete removes a session if present.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanExpired removes all expired sessions and reports how many went.
func (s *Store) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanup launches the periodic expiry sweep. Stop terminates it.
func (s *Store) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CleanExpired()
			case <-s.stopCleanup:
				return
			}
		}
	}()
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (s *Store) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, e := range s.sessions {
		if oldestID == "" || e.expiresAt.Before(oldestAt) {
			oldestID = id
			oldestAt = e.expiresAt
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
