package app

import (
	"context"
	"testing"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/store/iavl"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts swaplock.Options, kv swaplock.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	kv.Set([]byte(dummyKey), []byte(value))
	return nil
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts swaplock.Options, kv swaplock.KVStore) error {
	c.called++
	return nil
}

func TestInitChain(t *testing.T) {
	c := new(countInit)
	init := ChainInitializers(dummyInit{}, c)

	store := NewStoreApp("foo", iavl.MockCommitStore(), swaplock.NewQueryRouter(), context.Background()).WithInit(init)
	assert.Equal(t, "", store.GetChainID())
	assert.Equal(t, 0, c.called)

	store.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-67",
		AppStateBytes: []byte(`{"dummy": "secret"}`),
	})

	assert.Equal(t, "test-chain-67", store.GetChainID())
	assert.Equal(t, 1, c.called)
	assert.Equal(t, []byte("secret"), store.DeliverStore().Get([]byte(dummyKey)))

	// a second init is rejected, the chain was already initialized
	assert.Panics(t, func() {
		store.InitChain(abci.RequestInitChain{
			ChainId:       "test-chain-67",
			AppStateBytes: []byte(`{"dummy": "secret"}`),
		})
	})
}

func TestInitChainInvalidState(t *testing.T) {
	cases := map[string]struct {
		appState []byte
	}{
		"missing app state":   {appState: nil},
		"app state not a map": {appState: []byte(`"not-an-object"`)},
		"broken json":         {appState: []byte(`{`)},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewStoreApp("foo", iavl.MockCommitStore(), swaplock.NewQueryRouter(), context.Background()).
				WithInit(ChainInitializers(dummyInit{}))
			assert.Panics(t, func() {
				store.InitChain(abci.RequestInitChain{
					ChainId:       "test-chain-67",
					AppStateBytes: tc.appState,
				})
			})
		})
	}
}

func TestChainInitializersAbort(t *testing.T) {
	c := new(countInit)
	init := ChainInitializers(failInit{errors.ErrHuman}, c)

	err := init.FromGenesis(swaplock.Options{}, nil)
	assert.True(t, errors.ErrHuman.Is(err))
	// the first failure aborts, later initializers must not run
	assert.Equal(t, 0, c.called)
}

type failInit struct {
	err error
}

func (f failInit) FromGenesis(opts swaplock.Options, kv swaplock.KVStore) error {
	return f.err
}
