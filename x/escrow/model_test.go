package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/store"
	"github.com/lockboxlabs/swaplock/swaptest"
)

func TestEscrowValidate(t *testing.T) {
	maker := swaptest.NewCondition().Address()
	assetA := swaptest.NewCondition().Address()
	assetB := swaptest.NewCondition().Address()

	cases := map[string]struct {
		esc     *Escrow
		wantErr *errors.Error
	}{
		"valid": {
			esc: &Escrow{Maker: maker, AssetA: assetA, AssetB: assetB, DealNonce: 1, AskAmount: 50, Proof: 255},
		},
		"missing maker": {
			esc:     &Escrow{AssetA: assetA, AssetB: assetB, AskAmount: 50},
			wantErr: errors.ErrInput,
		},
		"missing asset a": {
			esc:     &Escrow{Maker: maker, AssetB: assetB, AskAmount: 50},
			wantErr: errors.ErrInput,
		},
		"missing asset b": {
			esc:     &Escrow{Maker: maker, AssetA: assetA, AskAmount: 50},
			wantErr: errors.ErrInput,
		},
		"zero ask": {
			esc:     &Escrow{Maker: maker, AssetA: assetA, AssetB: assetB, DealNonce: 1},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.esc.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestBucketKeyIsTheDerivation(t *testing.T) {
	kv := store.MemStore()
	bucket := NewBucket()
	maker := swaptest.NewCondition().Address()

	addr, proof, err := Derive(maker, 1)
	require.NoError(t, err)

	esc := &Escrow{
		Maker:     maker,
		AssetA:    swaptest.NewCondition().Address(),
		AssetB:    swaptest.NewCondition().Address(),
		DealNonce: 1,
		AskAmount: 50,
		Proof:     proof,
	}
	require.NoError(t, bucket.Save(kv, esc))

	loaded, err := bucket.Get(kv, addr)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, esc, loaded)

	// no record hides under any other address
	missing, err := bucket.Get(kv, swaptest.NewCondition().Address())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBucketMakerIndex(t *testing.T) {
	kv := store.MemStore()
	bucket := NewBucket()
	alice := swaptest.NewCondition().Address()
	bob := swaptest.NewCondition().Address()
	assetA := swaptest.NewCondition().Address()
	assetB := swaptest.NewCondition().Address()

	open := func(maker swaplock.Address, nonce uint64) swaplock.Address {
		t.Helper()
		addr, proof, err := Derive(maker, nonce)
		require.NoError(t, err)
		esc := &Escrow{Maker: maker, AssetA: assetA, AssetB: assetB, DealNonce: nonce, AskAmount: 1, Proof: proof}
		require.NoError(t, bucket.Save(kv, esc))
		return addr
	}

	first := open(alice, 1)
	open(alice, 2)
	open(bob, 1)

	escrows, err := bucket.ByMaker(kv, alice)
	require.NoError(t, err)
	assert.Len(t, escrows, 2)

	escrows, err = bucket.ByMaker(kv, bob)
	require.NoError(t, err)
	assert.Len(t, escrows, 1)

	// erasing a record drops it from the index
	require.NoError(t, bucket.Delete(kv, first))
	escrows, err = bucket.ByMaker(kv, alice)
	require.NoError(t, err)
	require.Len(t, escrows, 1)
	assert.Equal(t, uint64(2), escrows[0].DealNonce)
}
