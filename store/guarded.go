package store

import (
	"bytes"
	"sync"

	"github.com/iov-one/treasury/errors"
)

// DefaultAttempts is the number of optimistic attempts an update gets
// before it is run with exclusive access to the store.
const DefaultAttempts = 3

// Guarded provides safe concurrent access to a single KVStore.
//
// Reads run in parallel. Updates run optimistically on a cache wrap that
// records every value read from the store. At commit time, under an
// exclusive lock, the recorded values are compared with the current state.
// If any of them has changed, the update is discarded and run again. The last
// attempt holds the exclusive lock for the whole duration, so every update
// eventually succeeds unless the function itself fails.
//
// A successful update is written atomically and, if the store is a
// Committer, a new version is committed.
type Guarded struct {
	mu       sync.RWMutex
	db       KVStore
	attempts int
	// version is incremented with every write. It is used to detect
	// conflicts of updates that iterated over the store.
	version uint64
}

// NewGuarded returns a guard over given store. Non positive attempts means
// DefaultAttempts.
func NewGuarded(db KVStore, attempts int) *Guarded {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Guarded{db: db, attempts: attempts}
}

// View runs given function with read access to the store. Any number of
// views can run at the same time. Returned error is passed through.
func (g *Guarded) View(fn func(db ReadOnlyKVStore) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn(g.db)
}

// Check runs given function on a throw away cache wrap. Nothing the
// function writes is persisted.
func (g *Guarded) Check(fn func(db KVStore) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cache := NewBTreeCacheWrap(g.db, NewNonAtomicBatch(EmptyKVStore{}), nil)
	defer cache.Discard()
	return fn(cache)
}

// Update runs given function and atomically writes everything it has
// changed. If the function returns an error, no change is written and the
// error is returned.
//
// The function can be called more than once and must not have side effects
// other than writing to the provided store.
func (g *Guarded) Update(fn func(db KVStore) error) error {
	for i := 1; i < g.attempts; i++ {
		done, err := g.optimistic(fn)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return g.exclusive(fn)
}

func (g *Guarded) optimistic(fn func(db KVStore) error) (bool, error) {
	g.mu.RLock()
	rec := &readRecorder{back: g.db, reads: make(map[string][]byte)}
	startVersion := g.version
	cache := NewBTreeCacheWrap(rec, g.db.NewBatch(), nil)
	err := fn(cache)
	g.mu.RUnlock()

	if err != nil {
		cache.Discard()
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if conflict, err := rec.conflicts(g.db, startVersion != g.version); err != nil {
		cache.Discard()
		return false, err
	} else if conflict {
		cache.Discard()
		return false, nil
	}
	return true, g.write(cache)
}

func (g *Guarded) exclusive(fn func(db KVStore) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cache := NewBTreeCacheWrap(g.db, g.db.NewBatch(), nil)
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return g.write(cache)
}

// write must be called with the exclusive lock held.
func (g *Guarded) write(cache BTreeCacheWrap) error {
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	g.version++
	if c, ok := g.db.(Committer); ok {
		if _, err := c.Commit(); err != nil {
			return errors.Wrap(err, "commit")
		}
	}
	return nil
}

// LatestVersion returns the latest committed version of the guarded store,
// or zero value if it does not keep versions.
func (g *Guarded) LatestVersion() (CommitID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if c, ok := g.db.(Committer); ok {
		return c.LatestVersion()
	}
	return CommitID{}, nil
}

// readRecorder remembers the value of every key read through it. Keys
// written by the update itself never reach the recorder, because the cache
// wrap above answers them.
type readRecorder struct {
	back    ReadOnlyKVStore
	reads   map[string][]byte
	scanned bool
}

var _ ReadOnlyKVStore = (*readRecorder)(nil)

func (r *readRecorder) Get(key []byte) ([]byte, error) {
	val, err := r.back.Get(key)
	if err != nil {
		return nil, err
	}
	if _, ok := r.reads[string(key)]; !ok {
		r.reads[string(key)] = val
	}
	return val, nil
}

func (r *readRecorder) Has(key []byte) (bool, error) {
	val, err := r.Get(key)
	return val != nil, err
}

func (r *readRecorder) Iterator(start, end []byte) (Iterator, error) {
	r.scanned = true
	return r.back.Iterator(start, end)
}

func (r *readRecorder) ReverseIterator(start, end []byte) (Iterator, error) {
	r.scanned = true
	return r.back.ReverseIterator(start, end)
}

// conflicts returns true if any of the recorded reads is no longer valid.
// An update that iterated cannot tell which keys it depends on, so any write
// since it started is a conflict.
func (r *readRecorder) conflicts(db ReadOnlyKVStore, written bool) (bool, error) {
	if r.scanned && written {
		return true, nil
	}
	for key, val := range r.reads {
		current, err := db.Get([]byte(key))
		if err != nil {
			return false, err
		}
		if !bytes.Equal(current, val) {
			return true, nil
		}
	}
	return false, nil
}
