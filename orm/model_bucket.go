package orm

import (
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for
// us. Instead we use a placeholder type and the validation is done during the
// runtime.
type ModelSlicePtr interface{}

// ModelBucket stores models of a single type under a name prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db treasury.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists.
	// It returns ErrNotFound if no entity can be found.
	Has(db treasury.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database and updates all indexes.
	// Model is validated before saving.
	Put(db treasury.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db treasury.KVStore, key []byte) error

	// ByIndex returns all entities that are referenced by given index
	// value. Result is appended to the destination that must be a
	// pointer to a slice of models. Returned are the primary keys of
	// loaded entities, in the same order.
	ByIndex(db treasury.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error)

	// IndexScan returns an iterator over all entities referenced by given
	// index value, ordered by their primary key.
	IndexScan(db treasury.ReadOnlyKVStore, indexName string, value []byte, reverse bool) (ModelIterator, error)

	// Scan returns an iterator over all entities of this bucket, ordered
	// by their primary key.
	Scan(db treasury.ReadOnlyKVStore, reverse bool) (ModelIterator, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithNativeIndex configures the bucket to build an index with given name.
// All entities stored in the bucket are indexed using value returned by the
// indexer function. An entity can be indexed under any number of values.
func WithNativeIndex(name string, indexer MultiKeyIndexer) ModelBucketOption {
	if !validIndexName(name) {
		panic("invalid index name: " + name)
	}
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("duplicated index name: " + name)
		}
		mb.indexes[name] = newNativeIndex(mb.name+"."+name, indexer)
	}
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

func validIndexName(s string) bool {
	return isBucketName(s)
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as given example model.
//
// Name must be 3 to 10 lower case letters or underscore. All keys are
// stored with the "<name>:" prefix.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   reflect.TypeOf(m),
		indexes: make(map[string]*nativeIndex),
	}
	if mb.model.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]*nativeIndex
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model.Elem()).Interface().(Model)
}

func (mb *modelBucket) One(db treasury.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "db get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	return unmarshalInto(raw, dest)
}

func unmarshalInto(raw []byte, dest Model) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db treasury.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "db has")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db treasury.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	for name, idx := range mb.indexes {
		if err := idx.Update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "cannot update %q index", name)
		}
	}

	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "db set")
	}
	return nil
}

// load returns the model stored under given key, or nil if there is none.
func (mb *modelBucket) load(db treasury.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "db get")
	}
	if raw == nil {
		return nil, nil
	}
	m := mb.newModel()
	if err := unmarshalInto(raw, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (mb *modelBucket) Delete(db treasury.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	for name, idx := range mb.indexes {
		if err := idx.Update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %q index", name)
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "db delete")
	}
	return nil
}

func (mb *modelBucket) ByIndex(db treasury.ReadOnlyKVStore, indexName string, value []byte, destination ModelSlicePtr) ([][]byte, error) {
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}
	if dest.IsNil() {
		return nil, errors.Wrap(errors.ErrImmutable, "got nil pointer")
	}
	dest = dest.Elem()
	if dest.Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}

	// It is allowed to pass destination as both []MyModel and []*MyModel
	sliceOfPointers := dest.Type().Elem().Kind() == reflect.Ptr
	if elem := dest.Type().Elem(); elem != mb.model && elem != mb.model.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "this bucket operates on %s model and cannot return %s", mb.model, elem)
	}

	it, err := mb.IndexScan(db, indexName, value, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var keys [][]byte
	for {
		m := mb.newModel()
		key, err := it.LoadNext(m)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		val := reflect.ValueOf(m)
		if !sliceOfPointers {
			val = val.Elem()
		}
		dest.Set(reflect.Append(dest, val))
	}
	return keys, nil
}

func (mb *modelBucket) IndexScan(db treasury.ReadOnlyKVStore, indexName string, value []byte, reverse bool) (ModelIterator, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", indexName)
	}
	keys, err := idx.Keys(db, value, reverse)
	if err != nil {
		return nil, err
	}
	return &indexModelIterator{db: db, keys: keys, dbKey: mb.dbKey}, nil
}

func (mb *modelBucket) Scan(db treasury.ReadOnlyKVStore, reverse bool) (ModelIterator, error) {
	start, end := prefixRange(mb.prefix)
	var (
		it  treasury.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return &bucketModelIterator{it: it, prefix: len(mb.prefix)}, nil
}

// prefixRange returns the start and end keys of a range that contains all
// keys with given prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return start, end[:i+1]
		}
	}
	return start, nil
}
