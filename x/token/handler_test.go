package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/gconf"
	"github.com/lockboxlabs/swaplock/store"
	"github.com/lockboxlabs/swaplock/swaptest"
	"github.com/lockboxlabs/swaplock/x/funds"
)

type checkErr func(error) bool

func noErr(err error) bool { return err == nil }

func TestCreateAssetHandler(t *testing.T) {
	issuer := swaptest.NewCondition()
	stranger := swaptest.NewCondition()

	cases := map[string]struct {
		signers       []swaplock.Condition
		preCreate     bool
		msg           swaplock.Msg
		expectCheck   checkErr
		expectDeliver checkErr
	}{
		"no message": {
			expectCheck:   errors.ErrState.Is,
			expectDeliver: errors.ErrState.Is,
		},
		"invalid ticker": {
			signers:       []swaplock.Condition{issuer},
			msg:           &CreateAssetMsg{Ticker: "gold", Issuer: issuer.Address()},
			expectCheck:   errors.ErrInput.Is,
			expectDeliver: errors.ErrInput.Is,
		},
		"issuer did not sign": {
			signers:       []swaplock.Condition{stranger},
			msg:           &CreateAssetMsg{Ticker: "GOLD", Issuer: issuer.Address()},
			expectCheck:   errors.ErrUnauthorized.Is,
			expectDeliver: errors.ErrUnauthorized.Is,
		},
		"asset registered": {
			signers:       []swaplock.Condition{issuer},
			msg:           &CreateAssetMsg{Ticker: "GOLD", Issuer: issuer.Address()},
			expectCheck:   noErr,
			expectDeliver: noErr,
		},
		"duplicate ticker": {
			signers:   []swaplock.Condition{issuer},
			preCreate: true,
			msg:       &CreateAssetMsg{Ticker: "GOLD", Issuer: issuer.Address()},
			// only delivery reads the state
			expectCheck:   noErr,
			expectDeliver: errors.ErrDuplicate.Is,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			auth := &swaptest.Auth{Signers: tc.signers}
			controller := NewController(NewAssetBucket(), NewHoldingBucket(), funds.NewController(funds.NewBucket()))
			h := NewCreateAssetHandler(auth, controller)

			if tc.preCreate {
				_, err := controller.CreateClass(kv, "GOLD", swaptest.NewCondition().Address())
				require.NoError(t, err)
			}

			tx := &swaptest.Tx{Msg: tc.msg}
			_, err := h.Check(nil, kv, tx)
			assert.True(t, tc.expectCheck(err), "%+v", err)
			_, err = h.Deliver(nil, kv, tx)
			assert.True(t, tc.expectDeliver(err), "%+v", err)
		})
	}
}

func TestMintHandler(t *testing.T) {
	issuer := swaptest.NewCondition()
	stranger := swaptest.NewCondition()
	dest := swaptest.NewCondition().Address()
	gold := AssetID("GOLD")

	cases := map[string]struct {
		signers       []swaplock.Condition
		issuerFunds   uint64
		preProvision  bool
		msg           swaplock.Msg
		expectCheck   checkErr
		expectDeliver checkErr
	}{
		"no message": {
			expectCheck:   errors.ErrState.Is,
			expectDeliver: errors.ErrState.Is,
		},
		"zero amount": {
			signers:       []swaplock.Condition{issuer},
			msg:           &MintMsg{Asset: gold, Dest: dest},
			expectCheck:   errors.ErrAmount.Is,
			expectDeliver: errors.ErrAmount.Is,
		},
		"unknown asset": {
			signers:       []swaplock.Condition{issuer},
			msg:           &MintMsg{Asset: AssetID("VOID"), Dest: dest, Amount: 10},
			expectCheck:   errors.ErrNotFound.Is,
			expectDeliver: errors.ErrNotFound.Is,
		},
		"issuer did not sign": {
			signers:       []swaplock.Condition{stranger},
			msg:           &MintMsg{Asset: gold, Dest: dest, Amount: 10},
			expectCheck:   errors.ErrUnauthorized.Is,
			expectDeliver: errors.ErrUnauthorized.Is,
		},
		"minting to a new holding": {
			signers:       []swaplock.Condition{issuer},
			issuerFunds:   100,
			msg:           &MintMsg{Asset: gold, Dest: dest, Amount: 10},
			expectCheck:   noErr,
			expectDeliver: noErr,
		},
		"issuer cannot pay the rent": {
			signers: []swaplock.Condition{issuer},
			msg:     &MintMsg{Asset: gold, Dest: dest, Amount: 10},
			// the deposit is only charged on delivery
			expectCheck:   noErr,
			expectDeliver: funds.ErrInsufficientFunds.Is,
		},
		"top up an existing holding": {
			signers:       []swaplock.Condition{issuer},
			preProvision:  true,
			msg:           &MintMsg{Asset: gold, Dest: dest, Amount: 10},
			expectCheck:   noErr,
			expectDeliver: noErr,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			require.NoError(t, gconf.Save(kv, "token", &Configuration{HoldingRent: testRent}))
			auth := &swaptest.Auth{Signers: tc.signers}
			cash := funds.NewController(funds.NewBucket())
			controller := NewController(NewAssetBucket(), NewHoldingBucket(), cash)
			h := NewMintHandler(auth, controller)

			_, err := controller.CreateClass(kv, "GOLD", issuer.Address())
			require.NoError(t, err)
			if tc.issuerFunds != 0 {
				require.NoError(t, cash.Credit(kv, issuer.Address(), tc.issuerFunds))
			}
			if tc.preProvision {
				helper := swaptest.NewCondition()
				require.NoError(t, cash.Credit(kv, helper.Address(), testRent))
				_, _, err := controller.EnsureHolding(kv, dest, gold, DerivedAuthority(helper))
				require.NoError(t, err)
			}

			tx := &swaptest.Tx{Msg: tc.msg}
			_, err = h.Check(nil, kv, tx)
			assert.True(t, tc.expectCheck(err), "%+v", err)
			_, err = h.Deliver(nil, kv, tx)
			assert.True(t, tc.expectDeliver(err), "%+v", err)
		})
	}
}

func TestMintBacksFreshHoldings(t *testing.T) {
	issuer := swaptest.NewCondition()
	dest := swaptest.NewCondition().Address()
	gold := AssetID("GOLD")

	kv := store.MemStore()
	require.NoError(t, gconf.Save(kv, "token", &Configuration{HoldingRent: testRent}))
	cash := funds.NewController(funds.NewBucket())
	controller := NewController(NewAssetBucket(), NewHoldingBucket(), cash)
	h := NewMintHandler(&swaptest.Auth{Signer: issuer}, controller)

	_, err := controller.CreateClass(kv, "GOLD", issuer.Address())
	require.NoError(t, err)
	require.NoError(t, cash.Credit(kv, issuer.Address(), 100))

	tx := &swaptest.Tx{Msg: &MintMsg{Asset: gold, Dest: dest, Amount: 777}}
	_, err = h.Deliver(nil, kv, tx)
	require.NoError(t, err)

	assert.Equal(t, uint64(777), holding(t, controller, kv, dest, gold))

	// the issuer put down the deposit for the fresh holding
	assert.Equal(t, uint64(100-testRent), fundsBalance(t, cash, kv, issuer.Address()))
	assert.Equal(t, uint64(testRent), fundsBalance(t, cash, kv, funds.RentPool()))

	// minting again reuses the holding, no second deposit
	_, err = h.Deliver(nil, kv, tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1554), holding(t, controller, kv, dest, gold))
	assert.Equal(t, uint64(100-testRent), fundsBalance(t, cash, kv, issuer.Address()))
}
