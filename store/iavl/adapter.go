/*
Package iavl provides a persistent, versioned KVStore backed by an iavl
merkle tree. Every commit produces a new version with a root hash that
can be used to prove the content of the treasury state.
*/
package iavl

import (
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistory is the number of committed versions kept on disk.
	DefaultHistory = 10
)

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB

	// numHistory is the number of versions kept. Older ones are pruned.
	// Zero keeps all of them.
	numHistory int64
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing. Empty path means
// an in memory database that is lost on exit.
func NewCommitStore(path, name string) (*CommitStore, error) {
	var db dbm.DB
	if path == "" {
		db = dbm.NewMemDB()
	} else {
		gdb, err := dbm.NewGoLevelDB(name, path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "open leveldb %s/%s: %s", path, name, err)
		}
		db = gdb
	}
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	s := &CommitStore{
		tree:       tree,
		db:         db,
		numHistory: DefaultHistory,
	}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// LoadLatestVersion loads the latest persisted version. If there was a
// crash during the last commit, it is guaranteed to return a stable state,
// even if older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return nil
}

// Commit the next version to disk, and returns info.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}

	if s.numHistory > 0 {
		if toRelease := version - s.numHistory; toRelease > 0 {
			if err := s.tree.DeleteVersion(toRelease); err != nil {
				return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "prune version %d: %s", toRelease, err)
			}
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// Adapter returns a cacheable view of the working tree.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: s}
}

// CacheWrap wraps the working tree with a btree cache.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Get returns the value from the working tree, including writes that are
// not committed yet.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists in the working tree.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes to the working tree. Writes are persisted on Commit.
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// NewBatch returns a batch writing to the working tree. Nothing written to
// the tree reaches the disk before Commit, so the batch does not need to be
// atomic on its own.
func (s *CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, false), nil
}

func (s *CommitStore) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	s.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{
			Key:   append([]byte(nil), key...),
			Value: append([]byte(nil), value...),
		})
		return false
	})
	return store.NewSliceIterator(res)
}
