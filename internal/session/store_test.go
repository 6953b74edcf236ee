package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acutrace/internal/core"
	"acutrace/internal/ingest"
)

func sampleResult(desc string) *ingest.AnalysisResult {
	return &ingest.AnalysisResult{
		Transactions: []core.Transaction{{Description: desc, Debit: 10}},
	}
}

func TestStorePutGet(t *testing.T) {
	s := New(10, time.Minute)
	defer s.Stop()

	id := s.Put(sampleResult("a"))
	require.NotEmpty(t, id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "a", got.Transactions[0].Description)

	_, ok = s.Get("unknown-session")
	assert.False(t, ok)
}

func TestStoreIDsAreUnique(t *testing.T) {
	s := New(10, time.Minute)
	defer s.Stop()

	a := s.Put(sampleResult("a"))
	b := s.Put(sampleResult("b"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())
}

func TestStoreTTLExpiry(t *testing.T) {
	s := New(10, 10*time.Millisecond)
	defer s.Stop()

	id := s.Put(sampleResult("a"))
	time.Sleep(25 * time.Millisecond)

	_, ok := s.Get(id)
	assert.False(t, ok)
	// The expired entry was removed on access.
	assert.Equal(t, 0, s.Len())
}

func TestStoreCapacityEviction(t *testing.T) {
	s := New(2, time.Minute)
	defer s.Stop()

	first := s.Put(sampleResult("first"))
	second := s.Put(sampleResult("second"))
	third := s.Put(sampleResult("third"))

	assert.Equal(t, 2, s.Len())
	// The entry closest to expiry (the first stored) made room.
	_, ok := s.Get(first)
	assert.False(t, ok)
	_, ok = s.Get(second)
	assert.True(t, ok)
	_, ok = s.Get(third)
	assert.True(t, ok)
}

func TestStoreDelete(t *testing.T) {
	s := New(10, time.Minute)
	defer s.Stop()

	id := s.Put(sampleResult("a"))
	s.Delete(id)
	_, ok := s.Get(id)
	assert.False(t, ok)
}

func TestStoreCleanExpired(t *testing.T) {
	s := New(10, 5*time.Millisecond)
	defer s.Stop()

	s.Put(sampleResult("a"))
	s.Put(sampleResult("b"))
	time.Sleep(15 * time.Millisecond)

	removed := s.CleanExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, s.Len())
}
