package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/gconf"
	"github.com/lockboxlabs/swaplock/store"
	"github.com/lockboxlabs/swaplock/swaptest"
	"github.com/lockboxlabs/swaplock/x/funds"
)

func TestInitState(t *testing.T) {
	issuer := swaptest.DecodeAddr(t, "1111111111111111111111111111111111111111")
	owner := swaptest.DecodeAddr(t, "0102030405060708090A0B0C0D0E0F1011121314")
	keeper := swaptest.DecodeAddr(t, "FFEEDDCCBBAA99887766554433221100FFEEDDCC")

	opts := swaplock.Options{
		"conf": []byte(`{"token": {"holding_rent": 7}}`),
		"token": []byte(`{
			"assets": [{"ticker": "GOLD", "issuer": "1111111111111111111111111111111111111111"}],
			"holdings": [
				{"owner": "0102030405060708090A0B0C0D0E0F1011121314", "ticker": "GOLD", "amount": 1000},
				{"owner": "FFEEDDCCBBAA99887766554433221100FFEEDDCC", "ticker": "GOLD", "amount": 0}
			]
		}`),
	}

	kv := store.MemStore()
	cash := funds.NewController(funds.NewBucket())
	ini := Initializer{Minter: cash}
	require.NoError(t, ini.FromGenesis(opts, kv))

	class, err := NewAssetBucket().Get(kv, AssetID("GOLD"))
	require.NoError(t, err)
	require.NotNil(t, class)
	assert.Equal(t, issuer, class.Issuer)

	controller := NewController(NewAssetBucket(), NewHoldingBucket(), cash)
	assert.Equal(t, uint64(1000), holding(t, controller, kv, owner, AssetID("GOLD")))
	// an empty holding is still a holding
	assert.Equal(t, uint64(0), holding(t, controller, kv, keeper, AssetID("GOLD")))

	// every genesis holding left one deposit in the pool
	assert.Equal(t, uint64(14), fundsBalance(t, cash, kv, funds.RentPool()))

	var conf Configuration
	require.NoError(t, gconf.Load(kv, "token", &conf))
	assert.Equal(t, uint64(7), conf.HoldingRent)
}

func TestInitStateErrors(t *testing.T) {
	anyErr := func(err error) bool { return err != nil }
	conf := []byte(`{"token": {"holding_rent": 7}}`)

	cases := map[string]struct {
		opts   swaplock.Options
		expect checkErr
	}{
		"no assets and no holdings is fine": {
			opts:   swaplock.Options{"conf": conf},
			expect: noErr,
		},
		"missing configuration": {
			opts:   swaplock.Options{"token": []byte(`{}`)},
			expect: anyErr,
		},
		"invalid ticker": {
			opts: swaplock.Options{
				"conf":  conf,
				"token": []byte(`{"assets": [{"ticker": "gold", "issuer": "1111111111111111111111111111111111111111"}]}`),
			},
			expect: anyErr,
		},
		"holding with unknown ticker": {
			opts: swaplock.Options{
				"conf":  conf,
				"token": []byte(`{"holdings": [{"owner": "1111111111111111111111111111111111111111", "ticker": "SLVR", "amount": 5}]}`),
			},
			expect: anyErr,
		},
		"malformed holding owner": {
			opts: swaplock.Options{
				"conf": conf,
				"token": []byte(`{
					"assets": [{"ticker": "GOLD", "issuer": "1111111111111111111111111111111111111111"}],
					"holdings": [{"owner": "1234", "ticker": "GOLD", "amount": 5}]
				}`),
			},
			expect: anyErr,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			ini := Initializer{Minter: funds.NewController(funds.NewBucket())}
			err := ini.FromGenesis(tc.opts, kv)
			assert.True(t, tc.expect(err), "%+v", err)
		})
	}
}
