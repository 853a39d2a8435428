package store

import (
	"bytes"
	"testing"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest/assert"
)

// StoreConstructor returns an empty store and a function releasing it.
type StoreConstructor func() (CacheableKVStore, func())

// RunConformance checks the behaviour every cache wrapped store shares.
// It is run by the btree and iavl store tests on their own base layer.
func RunConformance(t *testing.T, newStore StoreConstructor) {
	t.Run("cache layers", func(t *testing.T) { cacheLayers(t, newStore) })
	t.Run("discard drops pending writes", func(t *testing.T) { discardPending(t, newStore) })
	t.Run("merged iteration", func(t *testing.T) { mergedIteration(t, newStore) })
}

func cacheLayers(t *testing.T, newStore StoreConstructor) {
	base, release := newStore()
	defer release()

	assert.Nil(t, base.Set([]byte("offer:1"), []byte("open")))
	assert.Nil(t, base.Set([]byte("vault:1"), []byte("10")))

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("vault:1"), []byte("0")))
	assert.Nil(t, cache.Delete([]byte("offer:1")))
	assert.Nil(t, cache.Set([]byte("taker"), []byte("10")))

	// Pending changes are visible in the cache only.
	assertValue(t, base, "offer:1", "open")
	assertValue(t, base, "vault:1", "10")
	assertValue(t, base, "taker", "")
	assertValue(t, cache, "offer:1", "")
	assertValue(t, cache, "vault:1", "0")
	assertValue(t, cache, "taker", "10")

	assert.Nil(t, cache.Write())
	assertValue(t, base, "offer:1", "")
	assertValue(t, base, "vault:1", "0")
	assertValue(t, base, "taker", "10")
}

func discardPending(t *testing.T, newStore StoreConstructor) {
	base, release := newStore()
	defer release()
	assert.Nil(t, base.Set([]byte("maker"), []byte("10")))

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("maker"), []byte("0")))
	assert.Nil(t, cache.Set([]byte("vault:2"), []byte("10")))
	cache.Discard()

	// The pending batch is reset, so a later write has nothing to apply.
	assert.Nil(t, cache.Write())
	assertValue(t, base, "maker", "10")
	assertValue(t, base, "vault:2", "")
}

func mergedIteration(t *testing.T, newStore StoreConstructor) {
	cases := map[string]struct {
		parent  []Op
		child   []Op
		start   string
		end     string
		reverse bool
		want    []Model
	}{
		"child only": {
			child: []Op{set("b", "2"), set("a", "1")},
			want:  pairs("a", "1", "b", "2"),
		},
		"parent only": {
			parent: []Op{set("b", "2"), set("a", "1")},
			want:   pairs("a", "1", "b", "2"),
		},
		"interleaved layers": {
			parent: []Op{set("a", "1"), set("c", "3")},
			child:  []Op{set("b", "2"), set("d", "4")},
			want:   pairs("a", "1", "b", "2", "c", "3", "d", "4"),
		},
		"child overrides parent": {
			parent: []Op{set("a", "1"), set("b", "2")},
			child:  []Op{set("b", "20")},
			want:   pairs("a", "1", "b", "20"),
		},
		"deleted keys are skipped": {
			parent: []Op{set("a", "1"), set("b", "2"), set("c", "3")},
			child:  []Op{DelOp([]byte("a")), DelOp([]byte("c")), DelOp([]byte("x"))},
			want:   pairs("b", "2"),
		},
		"range is start inclusive and end exclusive": {
			parent: []Op{set("a", "1"), set("c", "3")},
			child:  []Op{set("b", "2"), set("d", "4")},
			start:  "b",
			end:    "d",
			want:   pairs("b", "2", "c", "3"),
		},
		"range ends before a deleted key": {
			parent: []Op{set("a", "1"), set("c", "3")},
			child:  []Op{DelOp([]byte("a"))},
			end:    "c",
			want:   nil,
		},
		"reverse merge": {
			parent:  []Op{set("a", "1"), set("c", "3")},
			child:   []Op{set("b", "2"), set("c", "30")},
			reverse: true,
			want:    pairs("c", "30", "b", "2", "a", "1"),
		},
		"reverse range": {
			parent:  []Op{set("a", "1"), set("b", "2")},
			child:   []Op{set("c", "3"), set("d", "4")},
			start:   "b",
			end:     "d",
			reverse: true,
			want:    pairs("c", "3", "b", "2"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, release := newStore()
			defer release()
			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}

			var start, end []byte
			if tc.start != "" {
				start = []byte(tc.start)
			}
			if tc.end != "" {
				end = []byte(tc.end)
			}
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = child.ReverseIterator(start, end)
			} else {
				it, err = child.Iterator(start, end)
			}
			assert.Nil(t, err)
			defer it.Release()

			for i, w := range tc.want {
				key, value, err := it.Next()
				assert.Nil(t, err)
				if !bytes.Equal(w.Key, key) {
					t.Fatalf("item %d: want key %q, got %q", i, w.Key, key)
				}
				assert.Equal(t, w.Value, value)
			}
			if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
				t.Fatalf("want end of iteration, got %+v", err)
			}
		})
	}
}

// assertValue checks Get and Has agree on the key. An empty want means
// the key must be missing.
func assertValue(t testing.TB, kv ReadOnlyKVStore, key, want string) {
	t.Helper()
	got, err := kv.Get([]byte(key))
	assert.Nil(t, err)
	has, err := kv.Has([]byte(key))
	assert.Nil(t, err)
	if want == "" {
		assert.Nil(t, got)
		assert.Equal(t, false, has)
		return
	}
	assert.Equal(t, []byte(want), got)
	assert.Equal(t, true, has)
}

func set(key, value string) Op {
	return SetOp([]byte(key), []byte(value))
}

func pairs(kv ...string) []Model {
	models := make([]Model, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		models = append(models, ledger.Pair([]byte(kv[i]), []byte(kv[i+1])))
	}
	return models
}
