package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/lockboxlabs/swaplock/store"
)

const (
	// DefaultCacheSize is the number of tree nodes held in memory.
	DefaultCacheSize = 10000

	// DefaultHistorySize is how many old versions we keep on disk before
	// releasing them.
	DefaultHistorySize = 20
)

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	numHistory int64
}

var _ store.CommitKVStore = CommitStore{}
var _ store.CacheableKVStore = CommitStore{}

// NewCommitStore creates a store with disk backing. The data is stored in
// goleveldb under dir, using name as the filename.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return CommitStore{
		tree:       tree,
		numHistory: DefaultHistorySize,
	}
}

// MockCommitStore returns a store backed by an in-memory db, for tests.
func MockCommitStore() CommitStore {
	db := dbm.NewMemDB()
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return CommitStore{
		tree:       tree,
		numHistory: DefaultHistorySize,
	}
}

// NewCommitStoreFromTree wraps a tree that was loaded elsewhere, for
// replaying blocks against an existing database.
func NewCommitStoreFromTree(tree *iavl.MutableTree) CommitStore {
	return CommitStore{
		tree:       tree,
		numHistory: DefaultHistorySize,
	}
}

// LoadLatestVersion loads the latest persisted version. If there was a crash
// during the last commit, it is guaranteed to return a stable state, even if
// older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Get reads from the working tree, including all changes that were not yet
// committed. Returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) []byte {
	_, val := s.tree.Get(key)
	return val
}

// Has checks the working tree for the key. Panics on nil key.
func (s CommitStore) Has(key []byte) bool {
	return s.tree.Has(key)
}

// Set updates the working tree
func (s CommitStore) Set(key, value []byte) {
	s.tree.Set(key, value)
}

// Delete removes from the working tree
func (s CommitStore) Delete(key []byte) {
	s.tree.Remove(key)
}

// NewBatch returns a batch that can write multiple ops atomically
func (s CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// Commit saves the working tree as the next version on disk, and returns
// info on the saved version. It releases history past numHistory versions.
func (s CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(err)
	}

	if s.numHistory > 0 && s.numHistory < version {
		toRelease := version - s.numHistory
		if s.tree.VersionExists(toRelease) {
			if err := s.tree.DeleteVersion(toRelease); err != nil {
				panic(err)
			}
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}
}

// CacheWrap gives us a savepoint to perform transactions on
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Adapter presents the commit store as a CacheableKVStore, so it can serve
// as the base layer under the block processing caches.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: s}
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists
// over it.
func (s CommitStore) Iterator(start, end []byte) store.Iterator {
	iter := newLazyIterator()
	go func() {
		s.tree.IterateRange(start, end, true, iter.add)
		iter.fin()
	}()
	iter.Next()
	return iter
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive. Start must be less than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists
// over it.
func (s CommitStore) ReverseIterator(start, end []byte) store.Iterator {
	iter := newLazyIterator()
	go func() {
		s.tree.IterateRange(start, end, false, iter.add)
		iter.fin()
	}()
	iter.Next()
	return iter
}
