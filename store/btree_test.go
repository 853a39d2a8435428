package store

import (
	"testing"

	"github.com/vaultswap/ledger/ledgertest/assert"
)

func newMemStore() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeConformance(t *testing.T) {
	RunConformance(t, newMemStore)
}

func TestNestedCacheDiscard(t *testing.T) {
	base := MemStore()
	assert.Nil(t, base.Set([]byte("vault"), []byte("10")))

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("vault"), []byte("0")))
	assert.Nil(t, inner.Set([]byte("taker"), []byte("10")))
	assert.Nil(t, inner.Write())

	// Changes are visible in the outer cache only, until it is written.
	got, err := outer.Get([]byte("taker"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("10"), got)
	got, err = base.Get([]byte("taker"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	outer.Discard()
	got, err = base.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("10"), got)
}
