package orm

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// ModelIterator loads models one by one. LoadNext returns ErrIteratorDone
// when all models were loaded.
type ModelIterator interface {
	// LoadNext loads the next model into given destination and returns
	// its primary key.
	LoadNext(dest Model) ([]byte, error)
	Release()
}

// bucketModelIterator iterates directly over bucket entries.
type bucketModelIterator struct {
	it     treasury.Iterator
	prefix int
}

func (i *bucketModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := i.it.Next()
	if err != nil {
		return nil, err
	}
	if err := unmarshalInto(value, dest); err != nil {
		return nil, err
	}
	return key[i.prefix:], nil
}

func (i *bucketModelIterator) Release() {
	i.it.Release()
}

// indexModelIterator loads models referenced by an index.
type indexModelIterator struct {
	db    treasury.ReadOnlyKVStore
	keys  treasury.Iterator
	dbKey func([]byte) []byte
}

func (i *indexModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, _, err := i.keys.Next()
	if err != nil {
		return nil, err
	}
	raw, err := i.db.Get(i.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "db get")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "index references missing entity %x", key)
	}
	if err := unmarshalInto(raw, dest); err != nil {
		return nil, err
	}
	return key, nil
}

func (i *indexModelIterator) Release() {
	i.keys.Release()
}

// Collect loads all remaining models of the iterator using given
// constructor. At most limit models are loaded, zero means no limit.
// The iterator is released.
func Collect(it ModelIterator, newModel func() Model, limit int) ([]Model, [][]byte, error) {
	defer it.Release()

	var (
		models []Model
		keys   [][]byte
	)
	for limit <= 0 || len(models) < limit {
		m := newModel()
		key, err := it.LoadNext(m)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		models = append(models, m)
		keys = append(keys, key)
	}
	return models, keys, nil
}
