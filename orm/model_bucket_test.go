package orm

import (
	"strconv"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	if err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 Counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketRejects(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &Counter{Count: 1}))
	assert.IsErr(t, errors.ErrType, b.Put(db, []byte("a"), &Other{Name: "x"}))
	assert.IsErr(t, errors.ErrInput, b.Put(db, []byte("a"), &Counter{Count: -1}))

	assert.Nil(t, b.Put(db, []byte("a"), &Counter{Count: 1}))
	var o Other
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("a"), &o))
}

func counterIndexer(m Model) ([][]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{[]byte(strconv.FormatInt(c.Count, 10))}, nil
}

func tagsIndexer(m Model) ([][]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	res := make([][]byte, len(c.Tags))
	for i, t := range c.Tags {
		res[i] = []byte(t)
	}
	return res, nil
}

func TestModelBucketByIndex(t *testing.T) {
	cases := map[string]struct {
		IndexName string
		QueryKey  string
		Dest      []*Counter
		WantErr   *errors.Error
		WantRes   []*Counter
		WantKeys  [][]byte
	}{
		"find none": {
			IndexName: "value",
			QueryKey:  "124089710947120",
		},
		"find one": {
			IndexName: "value",
			QueryKey:  "1111",
			WantRes:   []*Counter{{Count: 1111}},
			WantKeys:  [][]byte{[]byte("c1")},
		},
		"find two ordered by key": {
			IndexName: "value",
			QueryKey:  "4444",
			WantRes:   []*Counter{{Count: 4444}, {Count: 4444}},
			WantKeys:  [][]byte{[]byte("c2"), []byte("c3")},
		},
		"destination is appended to": {
			IndexName: "value",
			QueryKey:  "1111",
			Dest:      []*Counter{{Count: 7}},
			WantRes:   []*Counter{{Count: 7}, {Count: 1111}},
			WantKeys:  [][]byte{[]byte("c1")},
		},
		"non existing index name": {
			IndexName: "xyz",
			WantErr:   ErrInvalidIndex,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewModelBucket("cnts", &Counter{}, WithNativeIndex("value", counterIndexer))

			assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 1111}))
			assert.Nil(t, b.Put(db, []byte("c3"), &Counter{Count: 4444}))
			assert.Nil(t, b.Put(db, []byte("c2"), &Counter{Count: 4444}))

			dest := tc.Dest
			keys, err := b.ByIndex(db, tc.IndexName, []byte(tc.QueryKey), &dest)
			if tc.WantErr != nil {
				assert.IsErr(t, tc.WantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.WantKeys, keys)
			assert.Equal(t, tc.WantRes, dest)
		})
	}
}

func TestModelBucketByIndexDestination(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithNativeIndex("value", counterIndexer))
	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 1}))

	var values []Counter
	_, err := b.ByIndex(db, "value", []byte("1"), &values)
	assert.Nil(t, err)
	assert.Equal(t, []Counter{{Count: 1}}, values)

	var others []Other
	_, err = b.ByIndex(db, "value", []byte("1"), &others)
	assert.IsErr(t, errors.ErrType, err)

	_, err = b.ByIndex(db, "value", []byte("1"), values)
	assert.IsErr(t, errors.ErrType, err)
}

func TestIndexFollowsModelChanges(t *testing.T) {
	Convey("Given a bucket indexed by tags", t, func() {
		db := store.MemStore()
		b := NewModelBucket("cnts", &Counter{}, WithNativeIndex("tags", tagsIndexer))
		So(b.Put(db, []byte("a"), &Counter{Tags: []string{"red", "blue"}}), ShouldBeNil)
		So(b.Put(db, []byte("b"), &Counter{Tags: []string{"red"}}), ShouldBeNil)

		find := func(tag string) [][]byte {
			var dest []*Counter
			keys, err := b.ByIndex(db, "tags", []byte(tag), &dest)
			So(err, ShouldBeNil)
			return keys
		}

		Convey("every tag references its models", func() {
			So(find("red"), ShouldResemble, [][]byte{[]byte("a"), []byte("b")})
			So(find("blue"), ShouldResemble, [][]byte{[]byte("a")})
		})

		Convey("an update moves the references", func() {
			So(b.Put(db, []byte("a"), &Counter{Tags: []string{"blue", "green"}}), ShouldBeNil)
			So(find("red"), ShouldResemble, [][]byte{[]byte("b")})
			So(find("blue"), ShouldResemble, [][]byte{[]byte("a")})
			So(find("green"), ShouldResemble, [][]byte{[]byte("a")})
		})

		Convey("a delete removes the references", func() {
			So(b.Delete(db, []byte("a")), ShouldBeNil)
			So(find("red"), ShouldResemble, [][]byte{[]byte("b")})
			So(find("blue"), ShouldBeNil)
		})

		Convey("reverse scan returns the newest key first", func() {
			it, err := b.IndexScan(db, "tags", []byte("red"), true)
			So(err, ShouldBeNil)
			_, keys, err := Collect(it, func() Model { return &Counter{} }, 0)
			So(err, ShouldBeNil)
			So(keys, ShouldResemble, [][]byte{[]byte("b"), []byte("a")})
		})
	})
}

func TestModelBucketScan(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})
	other := NewModelBucket("cntx", &Counter{})

	for i := 1; i <= 5; i++ {
		key := []byte{byte(i)}
		assert.Nil(t, b.Put(db, key, &Counter{Count: int64(i)}))
		assert.Nil(t, other.Put(db, key, &Counter{Count: 100}))
	}

	it, err := b.Scan(db, false)
	assert.Nil(t, err)
	models, keys, err := Collect(it, func() Model { return &Counter{} }, 3)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(models))
	assert.Equal(t, [][]byte{{1}, {2}, {3}}, keys)

	it, err = b.Scan(db, true)
	assert.Nil(t, err)
	models, _, err = Collect(it, func() Model { return &Counter{} }, 0)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(models))
	assert.Equal(t, int64(5), models[0].(*Counter).Count)
}

func TestNativeIndexKeyPacking(t *testing.T) {
	chunks := [][]byte{[]byte("aaa"), {}, []byte("c")}
	raw, err := packNativeIdxKey(chunks)
	assert.Nil(t, err)
	assert.Equal(t, append([]byte("_x."), 3, 'a', 'a', 'a', 0, 1, 'c'), raw)

	got, err := unpackNativeIdxKey(raw)
	assert.Nil(t, err)
	assert.Equal(t, chunks, got)

	_, err = unpackNativeIdxKey([]byte("_y.abc"))
	assert.IsErr(t, errors.ErrInput, err)
	_, err = unpackNativeIdxKey(append([]byte("_x."), 9, 'a'))
	assert.IsErr(t, errors.ErrInput, err)

	_, err = packNativeIdxKey([][]byte{make([]byte, 255)})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestPrefixRange(t *testing.T) {
	start, end := prefixRange([]byte("cnts:"))
	assert.Equal(t, []byte("cnts:"), start)
	assert.Equal(t, []byte("cnts;"), end)

	_, end = prefixRange([]byte{1, 0xff})
	assert.Equal(t, []byte{2}, end)

	_, end = prefixRange([]byte{0xff})
	if end != nil {
		t.Fatalf("want no upper bound, got %x", end)
	}
}
