package app

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Queryable is the part of an abci application the store needs. The rpc
// client mirrors this signature as well, so the same store works in process
// and against a remote node.
type Queryable interface {
	Query(abci.RequestQuery) abci.ResponseQuery
}

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore. It can be
// wrapped with a bucket to reuse key and index logic on the client side.
type ABCIStore struct {
	app Queryable
}

var _ swaplock.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app Queryable) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) []byte {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	// the abci interface gives no error return, so panic is all we have
	if query.Code != 0 {
		panic(query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		panic(errors.Wrap(err, "unmarshal result set"))
	}
	if len(value.Results) == 0 {
		return nil
	}
	return value.Results[0]
}

// Has returns true if the given key is in the abci app store.
func (a *ABCIStore) Has(key []byte) bool {
	return len(a.Get(key)) > 0
}

// Iterator iterates over the abci store. Only iteration over the entire
// range is supported, as that is all the query interface can serialize.
func (a *ABCIStore) Iterator(start, end []byte) swaplock.Iterator {
	// TODO: serialize prefix queries over abci by reversing
	// orm.prefixRange on this side
	if start != nil || end != nil {
		panic("iterator only implemented for entire range")
	}

	query := a.app.Query(abci.RequestQuery{
		Path: "/?prefix",
		Data: nil,
	})
	if query.Code != 0 {
		panic(query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		panic(errors.Wrap(err, "cannot convert to model"))
	}

	return store.NewSliceIterator(models)
}

func (a *ABCIStore) ReverseIterator(start, end []byte) swaplock.Iterator {
	panic("not implemented")
}

func toModels(keys, values []byte) ([]swaplock.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
