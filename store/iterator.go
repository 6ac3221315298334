package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/tlfund/errors"
)

// pendingRange returns the cached writes of the btree that fall within
// [start, end), ordered the way they are going to be iterated.
//
// The range is copied so that the btree can be modified while an iterator is
// open. Cache wraps hold the writes of a single transaction or block, which
// keeps the copy small.
func pendingRange(bt *btree.BTree, start, end []byte, descending bool) []keyer {
	var res []keyer
	collect := func(it btree.Item) bool {
		res = append(res, it.(keyer))
		return true
	}

	if descending {
		switch {
		case start == nil && end == nil:
			bt.Descend(collect)
		case start == nil:
			bt.DescendLessOrEqual(bkeyLess{end}, collect)
		case end == nil:
			bt.DescendGreaterThan(bkeyLess{start}, collect)
		default:
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, collect)
		}
		return res
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
	return res
}

// side tells which of the merged iterators holds the current entry.
type side int

const (
	sideNone side = iota
	sideCache
	sideParent
	sideBoth
)

// cacheIterator merges the pending writes of a cache wrap with an iterator
// of the store it wraps. A pending write shadows the parent entry with the
// same key and a pending delete hides it.
type cacheIterator struct {
	pending    []keyer
	pos        int
	parent     Iterator
	descending bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(pending []keyer, parent Iterator, descending bool) (*cacheIterator, error) {
	it := &cacheIterator{
		pending:    pending,
		parent:     parent,
		descending: descending,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *cacheIterator) Valid() bool {
	return it.current() != sideNone
}

func (it *cacheIterator) Next() error {
	switch it.current() {
	case sideCache:
		it.pos++
	case sideParent:
		if err := it.parent.Next(); err != nil {
			return err
		}
	case sideBoth:
		it.pos++
		if err := it.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrDatabase, "iterator exhausted")
	}
	return it.skipDeleted()
}

func (it *cacheIterator) Key() []byte {
	switch it.current() {
	case sideCache, sideBoth:
		return it.pending[it.pos].Key()
	case sideParent:
		return it.parent.Key()
	default:
		panic("iterator exhausted")
	}
}

func (it *cacheIterator) Value() []byte {
	switch it.current() {
	case sideCache, sideBoth:
		// Deleted entries are skipped before they can be read.
		return it.pending[it.pos].(setItem).value
	case sideParent:
		return it.parent.Value()
	default:
		panic("iterator exhausted")
	}
}

func (it *cacheIterator) Close() {
	it.pending = nil
	it.parent.Close()
}

// skipDeleted advances over every pending delete at the cursor, together
// with the parent entry it hides.
func (it *cacheIterator) skipDeleted() error {
	for {
		s := it.current()
		if s != sideCache && s != sideBoth {
			return nil
		}
		if _, ok := it.pending[it.pos].(deletedItem); !ok {
			return nil
		}
		it.pos++
		if s == sideBoth {
			if err := it.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// current returns the side that holds the next key in iteration order.
func (it *cacheIterator) current() side {
	hasCache := it.pos < len(it.pending)
	hasParent := it.parent.Valid()
	switch {
	case !hasCache && !hasParent:
		return sideNone
	case !hasParent:
		return sideCache
	case !hasCache:
		return sideParent
	}

	cmp := bytes.Compare(it.pending[it.pos].Key(), it.parent.Key())
	if it.descending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return sideCache
	case cmp > 0:
		return sideParent
	default:
		return sideBoth
	}
}
