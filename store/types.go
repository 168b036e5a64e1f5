package store

import "github.com/lockboxlabs/swaplock"

// Aliases for all storage types of the root package, for shorter names
// everywhere.

type KVStore = swaplock.KVStore
type ReadOnlyKVStore = swaplock.ReadOnlyKVStore
type SetDeleter = swaplock.SetDeleter
type Batch = swaplock.Batch
type Iterator = swaplock.Iterator
type CacheableKVStore = swaplock.CacheableKVStore
type KVCacheWrap = swaplock.KVCacheWrap
type CommitKVStore = swaplock.CommitKVStore
type CommitID = swaplock.CommitID
type Model = swaplock.Model

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return swaplock.Pair(key, value)
}
