package store

import "github.com/iov-one/tlfund"

// Aliases of the root storage interfaces, so the implementations in this
// package read naturally.
type (
	ReadOnlyKVStore  = tlfund.ReadOnlyKVStore
	SetDeleter       = tlfund.SetDeleter
	KVStore          = tlfund.KVStore
	Batch            = tlfund.Batch
	Iterator         = tlfund.Iterator
	CacheableKVStore = tlfund.CacheableKVStore
	KVCacheWrap      = tlfund.KVCacheWrap
	CommitKVStore    = tlfund.CommitKVStore
	CommitID         = tlfund.CommitID
	Model            = tlfund.Model
)
