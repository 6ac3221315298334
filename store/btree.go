package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/tlfund/errors"
)

// btreeDegree is the branching factor of the cache btrees. Cache wraps live
// for a single transaction or block, so a shallow tree is enough.
const btreeDegree = 2

// MemStore returns an in-memory store without persistence. The genesis
// validation command loads the initial state into one.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap keeps writes in a btree on top of a read only store and
// flushes them through a batch on Write. Savepoints and the per block
// delivery state are built on it.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps kv. All writes are recorded in the batch, which is
// expected to apply them to the store underneath kv. free may be nil. Nested
// wraps share the free list of their parent.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap returns a savepoint on top of this cache.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all cached writes to the wrapped store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all cached writes. The nodes are returned to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch it := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Get(key)
	case setItem:
		return it.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown cache item %T", it)
	}
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch it := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Has(key)
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown cache item %T", it)
	}
}

func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(pendingRange(b.bt, start, end, false), parent, false)
}

func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(pendingRange(b.bt, start, end, true), parent, true)
}

// keyer is implemented by every item stored in the cache btree.
type keyer interface {
	Key() []byte
}

// bkey is a btree item ordered by its key. It is used directly for lookups
// and embedded by the cached entries.
type bkey struct {
	key []byte
}

var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

func (k bkey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) < 0
}

// bkeyLess is a pivot sorting right before the items with the same key. It
// turns the inclusive bounds of the btree descend calls into the exclusive
// end of a reverse iterator.
type bkeyLess struct {
	key []byte
}

var _ btree.Item = bkeyLess{}

func (k bkeyLess) Key() []byte {
	return k.key
}

func (k bkeyLess) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) <= 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey: bkey{key}, value: value}
}
