package transfer

import "sync"

// LockTable hands out one exclusive lock per destination name so concurrent
// uploads to the same file cannot interleave their appends. Entries are
// reference-counted and removed once the last holder releases, so the table
// stays proportional to in-flight uploads, not to stored files.
type LockTable struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[string]*lockEntry)}
}

// Acquire blocks until the caller holds the exclusive lock for name and
// returns the release function. Release exactly once, on every exit path.
func (t *LockTable) Acquire(name string) func() {
	t.mu.Lock()
	entry, ok := t.locks[name]
	if !ok {
		entry = &lockEntry{}
		t.locks[name] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		t.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(t.locks, name)
		}
		t.mu.Unlock()
	}
}
