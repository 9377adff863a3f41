package auth

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptTracker_FreshIdentifierNotExceeded(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 5*time.Minute)

	assert.False(t, tracker.HasExceeded("dev@example.com"))
	assert.Equal(t, 0, tracker.Attempts("dev@example.com"))
}

func TestAttemptTracker_ExceedsAtMaximum(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 5*time.Minute)

	for i := 0; i < 4; i++ {
		tracker.Record("dev@example.com")
	}
	assert.False(t, tracker.HasExceeded("dev@example.com"), "4 attempts must not exceed")

	tracker.Record("dev@example.com")
	assert.True(t, tracker.HasExceeded("dev@example.com"), "5 attempts must exceed")
}

func TestAttemptTracker_IdentifiersAreIndependent(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 5*time.Minute)

	for i := 0; i < 5; i++ {
		tracker.Record("a@example.com")
	}

	assert.True(t, tracker.HasExceeded("a@example.com"))
	assert.False(t, tracker.HasExceeded("b@example.com"))
}

func TestAttemptTracker_Evict(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 5*time.Minute)

	for i := 0; i < 5; i++ {
		tracker.Record("dev@example.com")
	}
	assert.True(t, tracker.HasExceeded("dev@example.com"))

	tracker.Evict("dev@example.com")

	assert.False(t, tracker.HasExceeded("dev@example.com"))
	assert.Equal(t, 0, tracker.Attempts("dev@example.com"))
}

func TestAttemptTracker_EntriesExpireAfterTTL(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 50*time.Millisecond)

	for i := 0; i < 5; i++ {
		tracker.Record("dev@example.com")
	}
	assert.True(t, tracker.HasExceeded("dev@example.com"))

	time.Sleep(120 * time.Millisecond)

	// An expired identifier is indistinguishable from one never tracked
	assert.False(t, tracker.HasExceeded("dev@example.com"))
	assert.Equal(t, 0, tracker.Attempts("dev@example.com"))
}

func TestAttemptTracker_TTLSlidesOnWrite(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 100*time.Millisecond)

	tracker.Record("dev@example.com")
	time.Sleep(60 * time.Millisecond)
	tracker.Record("dev@example.com")
	time.Sleep(60 * time.Millisecond)

	// 120ms after the first write, but only 60ms after the last one
	assert.Equal(t, 2, tracker.Attempts("dev@example.com"))
}

func TestAttemptTracker_CapacityEvictsLeastRecentlyUsed(t *testing.T) {
	tracker := NewAttemptTracker(5, 2, 5*time.Minute)

	tracker.Record("first@example.com")
	tracker.Record("second@example.com")
	tracker.Record("third@example.com")

	assert.Equal(t, 0, tracker.Attempts("first@example.com"), "oldest entry evicted at capacity")
	assert.Equal(t, 1, tracker.Attempts("second@example.com"))
	assert.Equal(t, 1, tracker.Attempts("third@example.com"))
}

func TestAttemptTracker_ConcurrentRecordsLoseNoIncrements(t *testing.T) {
	const (
		goroutines = 8
		perRoutine = 250
	)

	tracker := NewAttemptTracker(5, 100, 5*time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				tracker.Record("dev@example.com")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perRoutine, tracker.Attempts("dev@example.com"))
}

func TestAttemptTracker_ConcurrentMixedOperations(t *testing.T) {
	tracker := NewAttemptTracker(5, 100, 5*time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		id := fmt.Sprintf("user-%d@example.com", g)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tracker.Record(id)
				tracker.HasExceeded(id)
				if i%10 == 0 {
					tracker.Evict(id)
				}
			}
		}()
	}
	wg.Wait()

	// No assertion on exact counts; the test exists to fail under -race if
	// eviction races destructively with records.
	for g := 0; g < 4; g++ {
		id := fmt.Sprintf("user-%d@example.com", g)
		assert.GreaterOrEqual(t, tracker.Attempts(id), 0)
	}
}
