package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/weave-splitter/store"
	"github.com/iov-one/weave-splitter/weavetest/assert"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func makeBase() (store.CacheableKVStore, func()) {
	commit := NewCommitStoreWithDB(dbm.NewMemDB())
	return commit.Adapter(), func() { commit.Close() }
}

func TestAdapterGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestAdapterCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestAdapterFuzzIterator(t *testing.T) {
	store.NewTestSuite(makeBase).FuzzIterator(t)
}

func TestAdapterIteratorWithConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestAdapterNestedCacheDiscard(t *testing.T) {
	store.NewTestSuite(makeBase).NestedCacheDiscard(t)
}

// TestCommitOverwrite checks that we commit properly
// and can add/overwrite/query in the next adapter
func TestCommitOverwrite(t *testing.T) {
	k1, k2, k3 := []byte("key-1"), []byte("key-2"), []byte("key-3")
	v1, v2, v3 := []byte("value-1"), []byte("value-2"), []byte("value-3")

	commit := NewCommitStoreWithDB(dbm.NewMemDB())
	defer commit.Close()
	// only one to trigger a cleanup
	commit.numHistory = 1

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set(k1, v1))
	assert.Nil(t, parent.Set(k2, v2))
	assert.Nil(t, parent.Write())
	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}

	child := commit.CacheWrap()
	assert.Nil(t, child.Set(k1, v3))
	assert.Nil(t, child.Delete(k2))
	assert.Nil(t, child.Set(k3, v3))

	// a side cache wrap sees only the committed state
	side := commit.CacheWrap()
	assertGetHas(t, side, k1, v1, true)
	assertGetHas(t, side, k2, v2, true)
	assertGetHas(t, side, k3, nil, false)

	assert.Nil(t, child.Write())
	assertGetHas(t, side, k1, v3, true)
	assertGetHas(t, side, k2, nil, false)
	assertGetHas(t, side, k3, v3, true)

	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	if string(id.Hash) == string(id2.Hash) {
		t.Fatal("hash did not change")
	}

	latest, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id2, latest)
}

func TestCommitStoreReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "splitter")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())
	assert.Nil(t, commit.Adapter().Set([]byte("k"), []byte("v")))
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Nil(t, commit.Close())

	reopened, err := NewCommitStore(dir, "splitter")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id, latest)
	got, err := reopened.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), got)
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}
