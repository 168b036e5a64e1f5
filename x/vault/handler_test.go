package vault

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
	"github.com/lockboxlabs/swaplock/x/token"
)

const holdingRent = 7

type checkErr func(error) bool

func noErr(err error) bool { return err == nil }

// vaultFixture wires the vault handlers to real funds and token controllers
// over one in-memory store. The owner starts with a funded wallet and a gold
// holding.
type vaultFixture struct {
	kv      swaplock.CacheableKVStore
	cash    funds.BaseController
	custody token.BaseController

	issuer swaplock.Condition
	owner  swaplock.Condition
	gold   swaplock.Address
	iron   swaplock.Address
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()
	kv := store.MemStore()
	require.NoError(t, gconf.Save(kv, "token", &token.Configuration{HoldingRent: holdingRent}))

	cash := funds.NewController(funds.NewBucket())
	custody := token.NewController(token.NewAssetBucket(), token.NewHoldingBucket(), cash)

	f := &vaultFixture{
		kv:      kv,
		cash:    cash,
		custody: custody,
		issuer:  swaptest.NewCondition(),
		owner:   swaptest.NewCondition(),
		gold:    token.AssetID("GOLD"),
		iron:    token.AssetID("IRON"),
	}

	if _, err := custody.CreateClass(kv, "GOLD", f.issuer.Address()); err != nil {
		t.Fatalf("create gold: %+v", err)
	}
	if _, err := custody.CreateClass(kv, "IRON", f.issuer.Address()); err != nil {
		t.Fatalf("create iron: %+v", err)
	}

	require.NoError(t, cash.Credit(kv, f.issuer.Address(), 1000))
	require.NoError(t, cash.Credit(kv, f.owner.Address(), 100))

	// the owner has gold to lock away, provisioned at the issuer's expense
	_, _, err := custody.EnsureHolding(kv, f.owner.Address(), f.gold, token.DerivedAuthority(f.issuer))
	require.NoError(t, err)
	require.NoError(t, custody.Mint(kv, f.gold, f.owner.Address(), 80))
	return f
}

func (f *vaultFixture) holding(t *testing.T, owner, asset swaplock.Address) uint64 {
	t.Helper()
	balance, err := f.custody.Balance(f.kv, owner, asset)
	require.NoError(t, err)
	return balance
}

func (f *vaultFixture) wallet(t *testing.T, addr swaplock.Address) uint64 {
	t.Helper()
	balance, err := f.cash.Balance(f.kv, addr)
	require.NoError(t, err)
	return balance
}

// deposit delivers a deposit signed by the owner and returns the vault
// address.
func (f *vaultFixture) deposit(t *testing.T, amount uint64) swaplock.Address {
	t.Helper()
	h := NewDepositHandler(&swaptest.Auth{Signer: f.owner}, f.custody)
	tx := &swaptest.Tx{Msg: &DepositMsg{Owner: f.owner.Address(), Asset: f.gold, Amount: amount}}
	res, err := h.Deliver(nil, f.kv, tx)
	require.NoError(t, err)
	return swaplock.Address(res.Data)
}

func TestVaultRoundTrip(t *testing.T) {
	f := newVaultFixture(t)

	vaultAddr := f.deposit(t, 30)
	assert.Equal(t, VaultAddress(f.owner.Address(), f.gold), vaultAddr)

	// the lockup sits in an account only the handler can speak for
	assert.Equal(t, uint64(50), f.holding(t, f.owner.Address(), f.gold))
	assert.Equal(t, uint64(30), f.holding(t, vaultAddr, f.gold))
	// the owner backed the vault holding
	assert.Equal(t, uint64(100-holdingRent), f.wallet(t, f.owner.Address()))

	// a second deposit reuses the holding without a second deposit charge
	assert.Equal(t, vaultAddr, f.deposit(t, 30))
	assert.Equal(t, uint64(20), f.holding(t, f.owner.Address(), f.gold))
	assert.Equal(t, uint64(60), f.holding(t, vaultAddr, f.gold))
	assert.Equal(t, uint64(100-holdingRent), f.wallet(t, f.owner.Address()))

	h := NewWithdrawHandler(&swaptest.Auth{Signer: f.owner}, f.custody)
	tx := &swaptest.Tx{Msg: &WithdrawMsg{Owner: f.owner.Address(), Asset: f.gold}}
	_, err := h.Deliver(nil, f.kv, tx)
	require.NoError(t, err)

	// the whole lockup came back and the vault holding is gone
	assert.Equal(t, uint64(80), f.holding(t, f.owner.Address(), f.gold))
	if _, err := f.custody.Balance(f.kv, vaultAddr, f.gold); !errors.ErrNotFound.Is(err) {
		t.Fatalf("vault holding survived: %+v", err)
	}
	assert.Equal(t, uint64(100), f.wallet(t, f.owner.Address()))

	// nothing left to withdraw
	if _, err := h.Deliver(nil, f.kv, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestDepositFailures(t *testing.T) {
	cases := map[string]struct {
		asset       swaplock.Address
		amount      uint64
		broke       bool
		strangerSig bool
		wantCheck   checkErr
		wantDeliver checkErr
	}{
		"stranger signs": {
			amount:      30,
			strangerSig: true,
			wantCheck:   errors.ErrUnauthorized.Is,
			wantDeliver: errors.ErrUnauthorized.Is,
		},
		"zero amount": {
			amount:      0,
			wantCheck:   errors.ErrAmount.Is,
			wantDeliver: errors.ErrAmount.Is,
		},
		"deposit exceeds the holding": {
			amount:      200,
			wantCheck:   noErr,
			wantDeliver: errors.ErrInsufficientAmount.Is,
		},
		"cannot pay the provisioning": {
			amount: 30,
			broke:  true,
			// the deposit is only charged on delivery
			wantCheck:   noErr,
			wantDeliver: funds.ErrInsufficientFunds.Is,
		},
		"unknown asset": {
			asset:       token.AssetID("VOID"),
			amount:      30,
			wantCheck:   noErr,
			wantDeliver: errors.ErrNotFound.Is,
		},
		"nothing to move": {
			asset:       token.AssetID("IRON"),
			amount:      30,
			wantCheck:   noErr,
			wantDeliver: errors.ErrNotFound.Is,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newVaultFixture(t)
			if tc.broke {
				require.NoError(t, f.cash.Debit(f.kv, f.owner.Address(), f.wallet(t, f.owner.Address())))
			}
			asset := tc.asset
			if asset == nil {
				asset = f.gold
			}
			signer := f.owner
			if tc.strangerSig {
				signer = swaptest.NewCondition()
			}
			h := NewDepositHandler(&swaptest.Auth{Signer: signer}, f.custody)
			tx := &swaptest.Tx{Msg: &DepositMsg{
				Owner:  f.owner.Address(),
				Asset:  asset,
				Amount: tc.amount,
			}}

			goldBefore := f.holding(t, f.owner.Address(), f.gold)
			walletBefore := f.wallet(t, f.owner.Address())

			cache := f.kv.CacheWrap()
			_, err := h.Check(nil, cache, tx)
			assert.True(t, tc.wantCheck(err), "%+v", err)
			cache.Discard()

			cache = f.kv.CacheWrap()
			_, err = h.Deliver(nil, cache, tx)
			assert.True(t, tc.wantDeliver(err), "%+v", err)
			cache.Discard()

			// a failed deposit leaves nothing behind
			assert.Equal(t, goldBefore, f.holding(t, f.owner.Address(), f.gold))
			assert.Equal(t, walletBefore, f.wallet(t, f.owner.Address()))
			vaultAddr := VaultAddress(f.owner.Address(), asset)
			if _, err := f.custody.Balance(f.kv, vaultAddr, asset); !errors.ErrNotFound.Is(err) {
				t.Fatalf("vault holding materialized: %+v", err)
			}
		})
	}
}

func TestWithdrawFailures(t *testing.T) {
	cases := map[string]struct {
		deposit     uint64
		emptyVault  bool
		closeOwn    bool
		broke       bool
		strangerSig bool
		wantCheck   checkErr
		wantDeliver checkErr
	}{
		"stranger signs": {
			deposit:     30,
			strangerSig: true,
			wantCheck:   errors.ErrUnauthorized.Is,
			wantDeliver: errors.ErrUnauthorized.Is,
		},
		"no vault": {
			wantCheck:   noErr,
			wantDeliver: errors.ErrNotFound.Is,
		},
		"empty vault": {
			emptyVault:  true,
			wantCheck:   noErr,
			wantDeliver: errors.ErrEmpty.Is,
		},
		"cannot pay the provisioning": {
			deposit:     80,
			closeOwn:    true,
			broke:       true,
			wantCheck:   noErr,
			wantDeliver: funds.ErrInsufficientFunds.Is,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newVaultFixture(t)
			vaultAddr := VaultAddress(f.owner.Address(), f.gold)
			if tc.deposit != 0 {
				f.deposit(t, tc.deposit)
			}
			if tc.emptyVault {
				_, _, err := f.custody.EnsureHolding(f.kv, vaultAddr, f.gold, token.DerivedAuthority(f.issuer))
				require.NoError(t, err)
			}
			if tc.closeOwn {
				require.NoError(t, f.custody.CloseHolding(f.kv, f.owner.Address(), f.gold, f.owner.Address()))
			}
			if tc.broke {
				require.NoError(t, f.cash.Debit(f.kv, f.owner.Address(), f.wallet(t, f.owner.Address())))
			}
			signer := f.owner
			if tc.strangerSig {
				signer = swaptest.NewCondition()
			}
			h := NewWithdrawHandler(&swaptest.Auth{Signer: signer}, f.custody)
			tx := &swaptest.Tx{Msg: &WithdrawMsg{Owner: f.owner.Address(), Asset: f.gold}}

			walletBefore := f.wallet(t, f.owner.Address())

			cache := f.kv.CacheWrap()
			_, err := h.Check(nil, cache, tx)
			assert.True(t, tc.wantCheck(err), "%+v", err)
			cache.Discard()

			cache = f.kv.CacheWrap()
			_, err = h.Deliver(nil, cache, tx)
			assert.True(t, tc.wantDeliver(err), "%+v", err)
			cache.Discard()

			// a failed withdraw leaves the lockup in place
			if tc.deposit != 0 {
				assert.Equal(t, tc.deposit, f.holding(t, vaultAddr, f.gold))
			}
			assert.Equal(t, walletBefore, f.wallet(t, f.owner.Address()))
		})
	}
}
