package store

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/treasurytest/assert"
)

// TestSuite runs the same set of checks against any KVStore
// implementation. Only the constructor of the store under test differs
// between the btree, iavl and bolt backends.
type TestSuite struct {
	open TestStoreConstructor
}

// TestStoreConstructor returns an empty store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{open: constructor}
}

// Run executes all checks of the suite as sub tests of t.
func (s *TestSuite) Run(t *testing.T) {
	t.Run("cache layers", s.CacheLayers)
	t.Run("overwrites", s.Overwrites)
	t.Run("random ranges", s.RandomRanges)
	t.Run("shadowed keys", s.ShadowedKeys)
}

// CacheLayers follows a vault record through a cache wrap that is written
// and through one that is discarded.
func (s *TestSuite) CacheLayers(t *testing.T) {
	base, cleanup := s.open()
	defer cleanup()

	vault, frozen := []byte("vault:ops"), []byte("frozen")
	payroll, active := []byte("vault:payroll"), []byte("active")
	request, pending := []byte("withdrawal:7"), []byte("pending")

	s.AssertGetHas(t, base, vault, nil, false)
	assert.Nil(t, base.Set(vault, frozen))
	s.AssertGetHas(t, base, vault, frozen, true)

	written := base.CacheWrap()
	s.AssertGetHas(t, written, vault, frozen, true)
	assert.Nil(t, written.Set(payroll, active))
	s.AssertGetHas(t, written, payroll, active, true)
	s.AssertGetHas(t, base, payroll, nil, false)
	assert.Nil(t, written.Write())
	s.AssertGetHas(t, base, payroll, active, true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(request, pending))
	s.AssertGetHas(t, discarded, request, pending, true)
	discarded.Discard()
	s.AssertGetHas(t, base, request, nil, false)

	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(vault))
	s.AssertGetHas(t, deleting, vault, nil, false)
	s.AssertGetHas(t, base, vault, frozen, true)
	assert.Nil(t, deleting.Write())
	s.AssertGetHas(t, base, vault, nil, false)
	s.AssertGetHas(t, base, payroll, active, true)
}

// Overwrites checks that a child cache shadows the values of its parent
// until written.
func (s *TestSuite) Overwrites(t *testing.T) {
	ks := randKeys(6, 16)
	vs := randKeys(12, 40)

	cases := map[string]struct {
		parent []Op
		child  []Op
		// Value of each Model is the expected value, nil if missing.
		before []Model
		after  []Model
	}{
		"overwrite one, delete another, add a third": {
			parent: []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			child:  []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			before: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			after:  []Model{Pair(ks[1], vs[11]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"set after delete": {
			parent: []Op{SetOp(ks[0], vs[0])},
			child:  []Op{DelOp(ks[0]), SetOp(ks[0], vs[5])},
			before: []Model{Pair(ks[0], vs[0])},
			after:  []Model{Pair(ks[0], vs[5])},
		},
		"delete a missing key": {
			parent: []Op{SetOp(ks[4], vs[4])},
			child:  []Op{DelOp(ks[5])},
			before: []Model{Pair(ks[4], vs[4]), Pair(ks[5], nil)},
			after:  []Model{Pair(ks[4], vs[4]), Pair(ks[5], nil)},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			parent, cleanup := s.open()
			defer cleanup()
			applyOps(t, parent, tc.parent)

			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			for _, q := range tc.before {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.after {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}
			assert.Nil(t, child.Write())
			for _, q := range tc.after {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// RandomRanges iterates over windows of random data kept in the child
// only, and spread over the child and its parent. Deletes of keys that do
// not exist must not show up.
func (s *TestSuite) RandomRanges(t *testing.T) {
	const size = 50

	child := randModels(size, 8, 40)
	parent := randModels(size, 8, 40)
	childOps := append(setOps(child...), delOps(randModels(20, 8, 40)...)...)
	parentOps := append(setOps(parent...), delOps(randModels(20, 8, 40)...)...)

	cases := map[string]iterCase{
		"child only": {
			child:   childOps,
			queries: windows(sortModels(child)),
		},
		"child over parent": {
			pre:     parentOps,
			child:   childOps,
			queries: windows(sortModels(append(child, parent...))),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.open()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// ShadowedKeys covers iteration when the child overwrites or deletes keys
// of the parent.
func (s *TestSuite) ShadowedKeys(t *testing.T) {
	ms := randModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	abc := sortModels([]Model{a, b, c})
	overwritten := sortModels([]Model{a2, b2, c, d})

	cases := map[string]iterCase{
		"child only": {
			child:   setOps(a, b, c),
			queries: windows(abc),
		},
		"parent only": {
			pre:     setOps(a, b, c),
			queries: windows(abc),
		},
		"split between parent and child": {
			pre:     setOps(a, b),
			child:   setOps(c),
			queries: windows(abc),
		},
		"child values win": {
			pre:     setOps(a, b, c),
			child:   setOps(a2, b2, d),
			queries: windows(overwritten),
		},
		"deleted keys are skipped": {
			pre:   setOps(a, c, d),
			child: delOps(a, b, d),
			queries: []rangeQuery{
				{expected: []Model{c}},
				{end: c.Key},
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.open()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func applyOps(t testing.TB, kv KVStore, ops []Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

func (c iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	applyOps(t, base, c.pre)
	child := base.CacheWrap()
	applyOps(t, child, c.child)

	for _, q := range c.queries {
		var (
			it  Iterator
			err error
		)
		if q.reverse {
			it, err = child.ReverseIterator(q.start, q.end)
		} else {
			it, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for i, want := range q.expected {
			key, value, err := it.Next()
			assert.Nil(t, err)
			if !bytes.Equal(want.Key, key) {
				t.Fatalf("%s: position %d: want key %X, got %X", q, i, want.Key, key)
			}
			assert.Equal(t, want.Value, value)
		}
		if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("%s: want ErrIteratorDone, got %+v", q, err)
		}
		it.Release()
	}
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (q rangeQuery) String() string {
	return fmt.Sprintf("range [%X, %X) reverse=%v", q.start, q.end, q.reverse)
}

// windows returns forward and reverse queries over sorted: unbounded,
// bounded on one side and bounded on both sides.
func windows(sorted []Model) []rangeQuery {
	n := len(sorted)
	lo, hi := n/5, n-n/5
	if hi <= lo {
		lo, hi = 0, n
	}
	var start, end []byte
	if lo < n {
		start = sorted[lo].Key
	}
	if hi < n {
		end = sorted[hi].Key
	}

	var qs []rangeQuery
	for _, reversed := range []bool{false, true} {
		order := func(ms []Model) []Model {
			if reversed {
				return reverse(ms)
			}
			return ms
		}
		qs = append(qs,
			rangeQuery{reverse: reversed, expected: order(sorted)},
			rangeQuery{start: start, reverse: reversed, expected: order(sorted[lo:])},
			rangeQuery{end: end, reverse: reversed, expected: order(sorted[:hi])},
			rangeQuery{start: start, end: end, reverse: reversed, expected: order(sorted[lo:hi])},
		)
	}
	return qs
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func setOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func delOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
