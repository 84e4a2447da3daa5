package timesheet

import (
	"sync"

	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
)

// keyLock serializes all mutations touching one (employee, date) slot.
// Compute, the workflow transitions and bulk compute all take the slot's
// lock, so an existence check and the following write behave as one atomic
// unit per key.
type keyLock struct {
	mu    sync.Mutex
	locks map[timesheet.Key]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[timesheet.Key]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyLock) Lock(key timesheet.Key) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
