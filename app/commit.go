package app

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed swaplock.CommitKVStore
	deliver   swaplock.KVCacheWrap
	check     swaplock.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets up the
// deliver and check caches.
func NewCommitStore(store swaplock.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the version and hash of the last committed state.
func (cs *CommitStore) CommitInfo() swaplock.CommitID {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache to the underlying store, commits it to
// disk and regenerates new deliver and check caches on top of the new state.
//
// TODO: protect with a mutex once tendermint calls Commit and CheckTx from
// separate connections concurrently
func (cs *CommitStore) Commit() swaplock.CommitID {
	cs.deliver.Write()
	cs.check.Discard()

	res := cs.committed.Commit()

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() swaplock.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() swaplock.CacheableKVStore {
	return cs.deliver
}

//------- storing chainID ---------

// _sl: is a prefix for platform internal data
const chainIDKey = "_sl:chainID"

// loadChainID returns the chain id stored if any.
func loadChainID(kv swaplock.KVStore) string {
	return string(kv.Get([]byte(chainIDKey)))
}

// saveChainID stores a chain id in the kv store. Returns an error if already
// set, or an invalid name.
func saveChainID(kv swaplock.KVStore, chainID string) error {
	if !swaplock.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	if kv.Has(k) {
		return errors.Wrap(errors.ErrImmutable, "chain id cannot change after genesis init")
	}
	kv.Set(k, []byte(chainID))
	return nil
}
