package orm

import (
	"bytes"
	"math"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// MultiKeyIndexer calculates the secondary index keys for a given model.
// Returning no keys means the model is not indexed.
type MultiKeyIndexer func(Model) ([][]byte, error)

const nativeIdxPrefix = "_x."

// indexMarker is stored as the value of every index entry. All information
// is in the key.
var indexMarker = []byte{1}

// nativeIndex is an index implementation that is using a database native
// storage and query in order to maintain and provide access to an index.
//
// Index keys are built in a way that allows using the native database key
// iteration in order to find all indexed entries:
//    <prefix>#<index name>#<value>#<entity key>
// where # is a serialization specific data.
type nativeIndex struct {
	name    string
	indexer MultiKeyIndexer
}

func newNativeIndex(name string, indexer MultiKeyIndexer) *nativeIndex {
	return &nativeIndex{name: name, indexer: indexer}
}

// Update updates the index. It should be called when any of the bucket
// entities has changed in the store.
//
// prev == nil means insert
// next == nil means delete
// both == nil is error
func (ix *nativeIndex) Update(db treasury.KVStore, key []byte, prev, next Model) error {
	if next == nil && prev == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}

	var (
		old, fresh [][]byte
		err        error
	)
	if prev != nil {
		if old, err = ix.indexer(prev); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}
	if next != nil {
		if fresh, err = ix.indexer(next); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}

	for _, v := range old {
		if contains(fresh, v) {
			continue
		}
		idxKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), v, key})
		if err != nil {
			return errors.Wrap(err, "build index key")
		}
		if err := db.Delete(idxKey); err != nil {
			return errors.Wrap(err, "db delete")
		}
	}
	for _, v := range fresh {
		if contains(old, v) {
			continue
		}
		idxKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), v, key})
		if err != nil {
			return errors.Wrap(err, "build index key")
		}
		if err := db.Set(idxKey, indexMarker); err != nil {
			return errors.Wrap(err, "db set")
		}
	}
	return nil
}

func contains(values [][]byte, v []byte) bool {
	for _, x := range values {
		if bytes.Equal(x, v) {
			return true
		}
	}
	return false
}

// Keys returns an iterator over keys of all entities indexed under given
// value. Values returned by the iterator are always nil.
func (ix *nativeIndex) Keys(db treasury.ReadOnlyKVStore, value []byte, reverse bool) (treasury.Iterator, error) {
	lookupKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), value})
	if err != nil {
		return nil, errors.Wrap(err, "build index key")
	}

	// MaxUint8 is never used as a chunk length, so it is greater than
	// any key with the lookup prefix.
	end := make([]byte, len(lookupKey)+1)
	copy(end, lookupKey)
	end[len(end)-1] = math.MaxUint8

	var it treasury.Iterator
	if reverse {
		it, err = db.ReverseIterator(lookupKey, end)
	} else {
		it, err = db.Iterator(lookupKey, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return &nativeIndexIterator{dbit: it}, nil
}

// nativeIndexIterator wraps a database iterator and returns indexed entity
// keys, hiding from the user native index implementation details.
type nativeIndexIterator struct {
	dbit treasury.Iterator
}

func (it *nativeIndexIterator) Release() {
	it.dbit.Release()
}

func (it *nativeIndexIterator) Next() ([]byte, []byte, error) {
	key, _, err := it.dbit.Next()
	if err != nil {
		return nil, nil, err
	}
	chunks, err := unpackNativeIdxKey(key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unpack native index key")
	}
	return chunks[len(chunks)-1], nil, nil
}

// packNativeIdxKey serialize a native index key from a set of values to a
// single key. This process can be reversed using unpackNativeIdxKey function.
//
// Each chunk is prefixed with its length, encoded as a uint8 value. A key
// created from 3 chunks, "aaa", "" and "c", is represented as:
//
//   _x.<3>aaa<0><1>c
//
// where <3>, <0> and <1> are that number values in bytes.
func packNativeIdxKey(chunks [][]byte) ([]byte, error) {
	size := len(nativeIdxPrefix)
	for _, b := range chunks {
		size += len(b) + 1
	}
	res := make([]byte, 0, size)
	res = append(res, nativeIdxPrefix...)
	for _, b := range chunks {
		// MaxUint8 is reserved for the search purpose.
		if len(b) > math.MaxUint8-1 {
			return nil, errors.Wrapf(errors.ErrInput, "no chunk can be bigger than %d bytes", math.MaxUint8-1)
		}
		res = append(res, uint8(len(b)))
		res = append(res, b...)
	}
	return res, nil
}

// unpackNativeIdxKey decodes native index key and extracts all chunks that
// compose that key.
func unpackNativeIdxKey(b []byte) ([][]byte, error) {
	if !bytes.HasPrefix(b, []byte(nativeIdxPrefix)) {
		return nil, errors.Wrap(errors.ErrInput, "not a native index key")
	}
	b = b[len(nativeIdxPrefix):]
	res := make([][]byte, 0, 3)
	for len(b) > 0 {
		size := int(b[0])
		if len(b) < 1+size {
			return nil, errors.Wrap(errors.ErrInput, "malformed offset")
		}
		res = append(res, b[1:1+size])
		b = b[1+size:]
	}
	if len(res) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty native index key")
	}
	return res, nil
}
