package swaptest

import (
	"encoding/hex"

	"github.com/stellar/go/exp/crypto/derivation"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() swaplock.Condition {
	return NewKey().PublicKey().Condition()
}

// DeriveKey returns the deterministic private key for the given hex encoded
// seed and SLIP-0010 derivation path, for example "m/44'/988'/0'". An empty
// path uses the seed directly. Use it when a test needs the same identities
// on every run.
func DeriveKey(t Tester, hexSeed, path string) *crypto.PrivateKey {
	t.Helper()
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		t.Fatalf("cannot decode seed: %s", err)
	}
	if path != "" {
		k, err := derivation.DeriveForPath(path, seed)
		if err != nil {
			t.Fatalf("cannot derive key for path %q: %s", path, err)
		}
		seed = k.Key
	}
	return crypto.PrivKeyEd25519FromSeed(seed)
}
