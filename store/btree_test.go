package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(memConstructor).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(memConstructor).CacheConflicts(t)
}

func TestBTreeCacheFuzzIterator(t *testing.T) {
	NewTestSuite(memConstructor).FuzzIterator(t)
}

func TestBTreeCacheIteratorWithConflicts(t *testing.T) {
	NewTestSuite(memConstructor).IteratorWithConflicts(t)
}

func TestBTreeNestedCacheDiscard(t *testing.T) {
	NewTestSuite(memConstructor).NestedCacheDiscard(t)
}

func TestBTreeCacheDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))
	require.NoError(t, cache.Set([]byte("b"), []byte("3")))
	cache.Discard()

	got, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))

	got := ops.ShowOps()
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSetOp())
	assert.Equal(t, []byte("a"), got[0].Key())
	assert.False(t, got[1].IsSetOp())
	assert.Equal(t, []byte("b"), got[1].Key())
}

func TestNestedCacheWrapWrite(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("v")))
	require.NoError(t, inner.Write())

	got, err := outer.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	got, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, outer.Write())
	got, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
