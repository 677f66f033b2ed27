//nolint
package store

import "github.com/iov-one/treasury"

// References to all storage types, for shorter names everywhere.

type (
	ReadOnlyKVStore  = treasury.ReadOnlyKVStore
	SetDeleter       = treasury.SetDeleter
	KVStore          = treasury.KVStore
	Batch            = treasury.Batch
	Iterator         = treasury.Iterator
	CacheableKVStore = treasury.CacheableKVStore
	KVCacheWrap      = treasury.KVCacheWrap
	Committer        = treasury.Committer
	CommitKVStore    = treasury.CommitKVStore
	CommitID         = treasury.CommitID
	Model            = treasury.Model
)

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
