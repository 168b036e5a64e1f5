package app

import (
	"context"
	"testing"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/store"
	"github.com/lockboxlabs/swaplock/store/iavl"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestAddValChange(t *testing.T) {
	pubKey := abci.PubKey{
		Type: "test",
		Data: []byte("someKey"),
	}
	pubKey2 := abci.PubKey{
		Type: "test",
		Data: []byte("someKey2"),
	}
	app := NewStoreApp("dummy", iavl.MockCommitStore(), swaplock.NewQueryRouter(), context.Background())

	t.Run("diff is equal to output with one update", func(t *testing.T) {
		diff := []abci.ValidatorUpdate{
			{PubKey: pubKey, Power: 10},
		}
		app.AddValChange(diff)
		res := app.EndBlock(abci.RequestEndBlock{})
		assert.Equal(t, diff, res.ValidatorUpdates)
	})

	t.Run("only produce last update to multiple validators", func(t *testing.T) {
		diff := []abci.ValidatorUpdate{
			{PubKey: pubKey, Power: 10},
			{PubKey: pubKey2, Power: 15},
			{PubKey: pubKey, Power: 1},
			{PubKey: pubKey2, Power: 2},
		}

		app.AddValChange(diff)
		res := app.EndBlock(abci.RequestEndBlock{})
		assert.Equal(t, diff[2:], res.ValidatorUpdates)
	})

	t.Run("a call with an empty diff does nothing", func(t *testing.T) {
		diff := []abci.ValidatorUpdate{
			{PubKey: pubKey, Power: 10},
			{PubKey: pubKey2, Power: 15},
		}
		app.AddValChange(diff)
		app.AddValChange(make([]abci.ValidatorUpdate, 0))

		res := app.EndBlock(abci.RequestEndBlock{})
		assert.Equal(t, diff, res.ValidatorUpdates)
	})

	t.Run("end block drains the changeset", func(t *testing.T) {
		res := app.EndBlock(abci.RequestEndBlock{})
		assert.Len(t, res.ValidatorUpdates, 0)
	})
}

func TestChainID(t *testing.T) {
	kv := store.MemStore()

	assert.Equal(t, "", loadChainID(kv))

	// too short names are rejected
	err := saveChainID(kv, "foo")
	assert.True(t, errors.ErrInput.Is(err))

	assert.NoError(t, saveChainID(kv, "test-chain-67"))
	assert.Equal(t, "test-chain-67", loadChainID(kv))

	// the chain id is written only once
	err = saveChainID(kv, "another-chain")
	assert.True(t, errors.ErrImmutable.Is(err))
	assert.Equal(t, "test-chain-67", loadChainID(kv))
}
