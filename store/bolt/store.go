/*
Package bolt provides a KVStore kept in a single boltdb file. Unlike the
iavl store it keeps no history and produces no state hash, but each batch
is written in one bolt transaction.
*/
package bolt

import (
	"bytes"
	"os"
	"time"

	boltdb "github.com/boltdb/bolt"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
)

var defaultBucket = []byte("treasury")

// Store is a KVStore persisting all data in a bolt database file.
type Store struct {
	db     *boltdb.DB
	bucket []byte
}

var _ store.KVStore = (*Store)(nil)

// Open returns a store using the database at given path. The file is
// created if it does not exist. Only one process can use the file at a
// time, Open fails after a short timeout if the file is locked.
func Open(path string) (*Store, error) {
	db, err := boltdb.Open(path, os.FileMode(0600), &boltdb.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open bolt %s: %s", path, err)
	}
	err = db.Update(func(tx *boltdb.Tx) error {
		_, err := tx.CreateBucketIfNotExists(defaultBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket: %s", err)
	}
	return &Store{db: db, bucket: defaultBucket}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Adapter returns a cacheable view of the store.
func (s *Store) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: s}
}

func (s *Store) Get(key []byte) ([]byte, error) {
	var res []byte
	err := s.db.View(func(tx *boltdb.Tx) error {
		k, v := tx.Bucket(s.bucket).Cursor().Seek(key)
		if k != nil && bytes.Equal(k, key) {
			// Memory is only valid within the transaction.
			res = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	return val != nil, err
}

func (s *Store) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

func (s *Store) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch that writes all its operations in a single bolt
// transaction.
func (s *Store) NewBatch() store.Batch {
	return &batch{store: s}
}

func (s *Store) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	err := s.db.View(func(tx *boltdb.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil && (end == nil || bytes.Compare(k, end) < 0); k, v = c.Next() {
			res = append(res, copyModel(k, v))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.NewSliceIterator(res), nil
}

func (s *Store) ReverseIterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	err := s.db.View(func(tx *boltdb.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		var k, v []byte
		if end == nil {
			k, v = c.Last()
		} else if k, v = c.Seek(end); k == nil {
			k, v = c.Last()
		} else {
			// End is exclusive and Seek stops at the first key
			// greater or equal.
			k, v = c.Prev()
		}
		for ; k != nil && (start == nil || bytes.Compare(k, start) >= 0); k, v = c.Prev() {
			res = append(res, copyModel(k, v))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.NewSliceIterator(res), nil
}

func copyModel(k, v []byte) store.Model {
	return store.Model{
		Key:   append([]byte{}, k...),
		Value: append([]byte{}, v...),
	}
}

type batch struct {
	store *Store
	ops   []store.Op
}

func (b *batch) Set(key, value []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

// Write applies all operations atomically. Either all of them are
// persisted or none.
func (b *batch) Write() error {
	err := b.store.db.Update(func(tx *boltdb.Tx) error {
		return applyOps(tx.Bucket(b.store.bucket), b.ops)
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.ops = nil
	return nil
}

func applyOps(bucket *boltdb.Bucket, ops []store.Op) error {
	for _, op := range ops {
		if err := op.Apply(bucketWriter{bucket}); err != nil {
			return err
		}
	}
	return nil
}

// bucketWriter adapts a bolt bucket to the SetDeleter interface.
type bucketWriter struct {
	b *boltdb.Bucket
}

func (w bucketWriter) Set(key, value []byte) error {
	return w.b.Put(key, value)
}

func (w bucketWriter) Delete(key []byte) error {
	return w.b.Delete(key)
}
