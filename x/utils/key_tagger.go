package utils

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/store"
)

// KeyTagger is a decorator that records all Set/Delete
// operations performed by its children and adds all those keys
// as DeliverTx tags, so clients can subscribe to changes on any
// object, eg. all updates to one holding.
type KeyTagger struct{}

var _ swaplock.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing
func (KeyTagger) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx, next swaplock.Checker) (*swaplock.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes in a recording KVStore into the child and
// uses that to calculate tags to add to DeliverResult
func (KeyTagger) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx, next swaplock.Deliverer) (*swaplock.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return nil, err
	}

	res.Tags = append(res.Tags, kvPairs(record)...)
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// kvPairs will get the kvpairs from an underlying store if possible
// use this, so we can use interface for recordingStore
func kvPairs(db swaplock.KVStore) common.KVPairs {
	r, ok := db.(store.Recorder)
	if !ok {
		return nil
	}
	return changesToTags(r.KVPairs())
}

//----- helpers ---

// changesToTags reports the modified keys as upper-case hex, the encoding
// tendermint uses when indexing tags, with a value marking set or delete.
func changesToTags(changes map[string][]byte) common.KVPairs {
	l := len(changes)
	if l == 0 {
		return nil
	}
	res := make(common.KVPairs, 0, l)
	for k, v := range changes {
		tag := recordSet
		if v == nil {
			tag = recordDelete
		}
		pair := common.KVPair{
			Key:   []byte(fmt.Sprintf("%X", k)),
			Value: tag,
		}
		res = append(res, pair)
	}
	res.Sort()
	return res
}
