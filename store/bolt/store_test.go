package bolt

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/treasury/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t testing.TB) (*Store, string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "bolt-store-")
	require.NoError(t, err)
	path := filepath.Join(dir, "treasury.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}

func TestBoltStore(t *testing.T) {
	suite := store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		s, _, cleanup := openTemp(t)
		return s.Adapter(), cleanup
	})
	suite.Run(t)
}

func TestBoltPersistence(t *testing.T) {
	s, path, cleanup := openTemp(t)
	defer cleanup()

	b := s.NewBatch()
	require.NoError(t, b.Set([]byte("vault:a"), []byte("1")))
	require.NoError(t, b.Set([]byte("vault:b"), []byte("2")))
	require.NoError(t, b.Delete([]byte("vault:a")))
	require.NoError(t, b.Write())
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	has, err := reopened.Has([]byte("vault:a"))
	require.NoError(t, err)
	assert.False(t, has)

	val, err := reopened.Get([]byte("vault:b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestBoltReverseIteratorBounds(t *testing.T) {
	s, _, cleanup := openTemp(t)
	defer cleanup()

	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Set([]byte(k), []byte(k)))
	}

	cases := map[string]struct {
		start, end []byte
		want       []string
	}{
		"no bounds":        {nil, nil, []string{"d", "c", "b", "a"}},
		"end is exclusive": {nil, []byte("c"), []string{"b", "a"}},
		"end past last":    {[]byte("b"), []byte("z"), []string{"d", "c", "b"}},
		"end between keys": {nil, []byte("bb"), []string{"b", "a"}},
		"empty range":      {[]byte("c"), []byte("c"), nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			it, err := s.ReverseIterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Release()

			var got []string
			for {
				k, _, err := it.Next()
				if err != nil {
					break
				}
				got = append(got, string(k))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBoltRejectsEmptyKey(t *testing.T) {
	s, _, cleanup := openTemp(t)
	defer cleanup()
	assert.Error(t, s.Set(nil, []byte("x")))
}
