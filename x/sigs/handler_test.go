package sigs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock/crypto"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/store"
	"github.com/lockboxlabs/swaplock/swaptest"
)

func TestBumpSequence(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()

	cases := map[string]struct {
		sequence  int64
		noUser    bool
		noSigner  bool
		increment uint64
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"increment by many": {
			sequence:  5,
			increment: 20,
			// processing the transaction itself counts as one bump
			wantSeq: 24,
		},
		"increment by one": {
			sequence:  5,
			increment: 1,
			wantSeq:   5,
		},
		"increment by the maximum": {
			sequence:  5,
			increment: 1000,
			wantSeq:   1004,
		},
		"zero increment": {
			sequence:  5,
			increment: 0,
			wantErr:   errors.ErrMsg,
			wantSeq:   5,
		},
		"increment above the maximum": {
			sequence:  5,
			increment: 1001,
			wantErr:   errors.ErrMsg,
			wantSeq:   5,
		},
		"missing signature": {
			sequence:  5,
			noSigner:  true,
			increment: 20,
			wantErr:   errors.ErrUnauthorized,
			wantSeq:   5,
		},
		"unknown user": {
			noUser:    true,
			increment: 20,
			wantErr:   errors.ErrNotFound,
		},
		"sequence overflow": {
			sequence:  math.MaxInt64 - 5,
			increment: 1000,
			wantErr:   errors.ErrOverflow,
			wantSeq:   math.MaxInt64 - 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			bucket := NewBucket()
			if !tc.noUser {
				obj := NewUser(priv.PublicKey())
				AsUser(obj).Sequence = tc.sequence
				require.NoError(t, bucket.Save(kv, obj))
			}

			auth := &swaptest.Auth{}
			if !tc.noSigner {
				auth.Signer = priv.PublicKey().Condition()
			}

			h := bumpSequenceHandler{auth: auth, b: bucket}
			tx := &swaptest.Tx{Msg: &BumpSequenceMsg{Increment: tc.increment}}

			_, err := h.Check(nil, kv, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			_, err = h.Deliver(nil, kv, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.noUser {
				return
			}
			obj, err := bucket.Get(kv, priv.PublicKey().Address())
			require.NoError(t, err)
			require.NotNil(t, obj)
			assert.Equal(t, tc.wantSeq, AsUser(obj).Sequence)
		})
	}
}

func TestBumpSequenceCheckTwice(t *testing.T) {
	kv := store.MemStore()
	bucket := NewBucket()
	priv := crypto.GenPrivKeyEd25519()

	obj := NewUser(priv.PublicKey())
	AsUser(obj).Sequence = 3
	require.NoError(t, bucket.Save(kv, obj))

	auth := &swaptest.Auth{Signer: priv.PublicKey().Condition()}
	h := bumpSequenceHandler{auth: auth, b: bucket}
	tx := &swaptest.Tx{Msg: &BumpSequenceMsg{Increment: 10}}

	// check must not move the sequence
	_, err := h.Check(nil, kv, tx)
	require.NoError(t, err)
	_, err = h.Check(nil, kv, tx)
	require.NoError(t, err)

	loaded, err := bucket.Get(kv, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(3), AsUser(loaded).Sequence)
}
