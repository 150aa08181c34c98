package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/weave-splitter/errors"
)

// collectBtree returns a snapshot of all items within [start, end) in
// ascending order. A nil boundary is open.
func collectBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// cacheIterator combines a snapshot of the cached items with the iterator
// of the parent store. Cached values shadow the parent ones, deleted items
// hide them.
type cacheIterator struct {
	items   []keyer
	reverse bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentHeld bool
	parentDone bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		items:   items,
		reverse: reverse,
		parent:  parent,
	}
}

// Next returns the next key value pair in iteration order. ErrIteratorDone
// is returned once all items were consumed.
func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := i.peekParent(); err != nil {
			return nil, nil, err
		}

		switch i.firstKey() {
		case none:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		case parent:
			i.parentHeld = false
			return i.parentKey, i.parentVal, nil
		case both:
			// Cached value shadows the parent one.
			i.parentHeld = false
			fallthrough
		case us:
			item := i.items[0]
			i.items = i.items[1:]
			if s, ok := item.(setItem); ok {
				return s.key, s.value, nil
			}
			// Deleted item, move on.
		}
	}
}

// Release releases the Iterator.
func (i *cacheIterator) Release() {
	i.items = nil
	i.parent.Release()
}

func (i *cacheIterator) peekParent() error {
	if i.parentHeld || i.parentDone {
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentVal, i.parentHeld = key, value, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		return nil
	default:
		return err
	}
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// firstKey selects the iterator with the lowest key is any
func (i *cacheIterator) firstKey() source {
	switch {
	case !i.parentHeld && len(i.items) == 0:
		return none
	case !i.parentHeld:
		return us
	case len(i.items) == 0:
		return parent
	}

	cmp := bytes.Compare(i.parentKey, i.items[0].Key())
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
