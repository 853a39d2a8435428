package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/vaultswap/ledger/errors"
)

// ascendBtree returns a snapshot of all items in [start, end) in ascending
// order. A nil start or end means an open range.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree returns the same items as ascendBtree, in descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// itemIter combines the cached items with the iterator of the parent store,
// taking into consideration overwrites and deletes.
type itemIter struct {
	ours []keyer
	idx  int

	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool

	reverse bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(ours []keyer, parent Iterator, reverse bool) (*itemIter, error) {
	it := &itemIter{
		ours:    ours,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (i *itemIter) advanceParent() error {
	if i.parentDone {
		return nil
	}
	key, value, err := i.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		i.parentDone = true
		i.parentKey, i.parentVal = nil, nil
		return nil
	}
	if err != nil {
		return err
	}
	i.parentKey, i.parentVal = key, value
	return nil
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// firstKey selects the iterator with the first key in the iteration order.
func (i *itemIter) firstKey() source {
	haveUs := i.idx < len(i.ours)
	switch {
	case !haveUs && i.parentDone:
		return none
	case !haveUs:
		return parent
	case i.parentDone:
		return us
	}

	cmp := bytes.Compare(i.parentKey, i.ours[i.idx].Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

// Next returns the next key value pair, skipping all items deleted in the
// cache.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		switch src := i.firstKey(); src {
		case none:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "btree iterator")
		case parent:
			key, value = i.parentKey, i.parentVal
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		default:
			item := i.ours[i.idx]
			i.idx++
			// our value overwrites the one of the parent
			if src == both {
				if err := i.advanceParent(); err != nil {
					return nil, nil, err
				}
			}
			if set, ok := item.(setItem); ok {
				return set.key, set.value, nil
			}
		}
	}
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.ours = nil
}
