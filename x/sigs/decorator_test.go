package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/crypto"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/store"
	"github.com/lockboxlabs/swaplock/swaptest"
)

// conditionsCapture records the conditions the decorator placed into the
// context for whoever runs below it.
type conditionsCapture struct {
	conditions []swaplock.Condition
}

func (h *conditionsCapture) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	h.conditions = Authenticate{}.GetConditions(ctx)
	return &swaplock.CheckResult{}, nil
}

func (h *conditionsCapture) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	h.conditions = Authenticate{}.GetConditions(ctx)
	return &swaplock.DeliverResult{}, nil
}

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	ctx := swaplock.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKeyEd25519()

	tx := &decoratorTx{payload: []byte("trade offer")}
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}

	d := NewDecorator()
	next := &conditionsCapture{}

	res, err := d.Check(ctx, kv, tx, next)
	require.NoError(t, err)
	require.Len(t, next.conditions, 1)
	assert.Equal(t, priv.PublicKey().Condition(), next.conditions[0])
	assert.True(t, Authenticate{}.HasAddress(withSigners(ctx, next.conditions), priv.PublicKey().Address()))
	// the signature verification effort is charged
	assert.Equal(t, int64(signatureVerifyCost), res.GasPayment)

	// checking consumed sequence 0, deliver the follow up
	sig, err = SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}

	next = &conditionsCapture{}
	_, err = d.Deliver(ctx, kv, tx, next)
	require.NoError(t, err)
	require.Len(t, next.conditions, 1)
	assert.Equal(t, priv.PublicKey().Condition(), next.conditions[0])
}

func TestDecoratorRequiresSignature(t *testing.T) {
	kv := store.MemStore()
	ctx := swaplock.WithChainID(context.Background(), chainID)
	tx := &decoratorTx{payload: []byte("trade offer")}

	d := NewDecorator()
	next := &swaptest.Handler{}

	if _, err := d.Check(ctx, kv, tx, next); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if _, err := d.Deliver(ctx, kv, tx, next); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Equal(t, 0, next.CallCount())

	// tests may turn the requirement off
	relaxed := d.AllowMissingSigs()
	_, err := relaxed.Check(ctx, kv, tx, next)
	require.NoError(t, err)
	_, err = relaxed.Deliver(ctx, kv, tx, next)
	require.NoError(t, err)
	assert.Equal(t, 2, next.CallCount())
}

func TestDecoratorRejectsTamperedSignature(t *testing.T) {
	kv := store.MemStore()
	ctx := swaplock.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKeyEd25519()

	tx := &decoratorTx{payload: []byte("trade offer")}
	sig, err := SignTx(priv, tx, "other-network", 0)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}

	d := NewDecorator()
	next := &swaptest.Handler{}
	if _, err := d.Check(ctx, kv, tx, next); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Equal(t, 0, next.CallCount())
}

func TestDecoratorPassesUnsignedTxTypes(t *testing.T) {
	kv := store.MemStore()
	ctx := swaplock.WithChainID(context.Background(), chainID)

	// a transaction type that cannot carry signatures is not our business
	tx := &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "test/any"}}

	d := NewDecorator()
	next := &swaptest.Handler{}
	_, err := d.Check(ctx, kv, tx, next)
	require.NoError(t, err)
	_, err = d.Deliver(ctx, kv, tx, next)
	require.NoError(t, err)
	assert.Equal(t, 2, next.CallCount())
}

// decoratorTx couples the sign bytes with a swaplock.Tx so it can travel
// through a decorator.
type decoratorTx struct {
	swaplock.Tx
	payload []byte
	sigs    []*StdSignature
}

var _ SignedTx = (*decoratorTx)(nil)

func (tx *decoratorTx) GetSignBytes() ([]byte, error)  { return tx.payload, nil }
func (tx *decoratorTx) GetSignatures() []*StdSignature { return tx.sigs }
