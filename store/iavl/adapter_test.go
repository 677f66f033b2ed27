package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest/assert"
)

func makeCommitStore(t testing.TB) (*CommitStore, string, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	commit, err := NewCommitStore(tmpDir, "base")
	assert.Nil(t, err)
	return commit, tmpDir, func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
}

func TestIavlStore(t *testing.T) {
	suite := store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		commit, err := NewCommitStore("", "mem")
		if err != nil {
			t.Fatalf("cannot create store: %s", err)
		}
		return commit.Adapter(), commit.Close
	})
	suite.Run(t)
}

func TestCommitOverwrite(t *testing.T) {
	commit, _, cleanup := makeCommitStore(t)
	defer cleanup()
	commit.numHistory = 1

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set([]byte("vault"), []byte("v1")))
	assert.Nil(t, parent.Set([]byte("withdrawal"), []byte("w1")))
	assert.Nil(t, parent.Write())
	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}
	firstHash := id.Hash

	child := commit.CacheWrap()
	assert.Nil(t, child.Set([]byte("vault"), []byte("v2")))
	assert.Nil(t, child.Delete([]byte("withdrawal")))

	side := commit.CacheWrap()
	got, err := side.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), got)

	assert.Nil(t, child.Write())
	got, err = side.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), got)
	has, err := side.Has([]byte("withdrawal"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)
	if string(id.Hash) == string(firstHash) {
		t.Fatal("different state must produce a different hash")
	}
}

func TestReloadFromDisk(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.Set([]byte("vault"), []byte("payroll")))
	want, err := commit.Commit()
	assert.Nil(t, err)
	commit.Close()

	reopened, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	defer reopened.Close()

	got, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.Hash, got.Hash)

	val, err := reopened.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("payroll"), val)
}
