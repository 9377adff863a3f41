package auth

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// AttemptTracker counts login events per account within a sliding time
// window. Entries expire a fixed TTL after their last write, and the store
// caps total entries with least-recently-used eviction, so an attacker
// cycling identifiers cannot grow it without bound.
//
// State lives in memory only. A restart forgets all counters, which for a
// single-instance deployment just resets the window.
type AttemptTracker struct {
	mu          sync.Mutex
	cache       *expirable.LRU[string, int]
	maxAttempts int
}

// NewAttemptTracker creates a tracker that reports HasExceeded once an
// identifier reaches maxAttempts recorded events. The store holds at most
// maxEntries identifiers and forgets an identifier ttl after its last write.
func NewAttemptTracker(maxAttempts, maxEntries int, ttl time.Duration) *AttemptTracker {
	return &AttemptTracker{
		cache:       expirable.NewLRU[string, int](maxEntries, nil, ttl),
		maxAttempts: maxAttempts,
	}
}

// Record increments the counter for identifier, creating it at 1 if absent
// or expired. Each write restarts the identifier's TTL. The outer mutex
// makes the read-increment-write atomic per call; the cache's own locking
// only covers individual operations.
func (t *AttemptTracker) Record(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempts, _ := t.cache.Get(identifier)
	t.cache.Add(identifier, attempts+1)
}

// HasExceeded reports whether identifier has reached the maximum number of
// recorded attempts. An absent or expired identifier counts as zero.
func (t *AttemptTracker) HasExceeded(identifier string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempts, ok := t.cache.Get(identifier)
	if !ok {
		return false
	}
	return attempts >= t.maxAttempts
}

// Evict removes identifier immediately, regardless of its TTL. Called when
// trust is restored (lock expiry, explicit admin unlock) so the counter
// starts fresh.
func (t *AttemptTracker) Evict(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cache.Remove(identifier)
}

// Attempts returns the current counter for identifier, zero if untracked
func (t *AttemptTracker) Attempts(identifier string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempts, _ := t.cache.Get(identifier)
	return attempts
}
