package escrow

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Derive finds the escrow address for a (maker, nonce) pair. The proof
// byte counts down from 255 and the first candidate address that does not
// open with a zero byte wins. Addresses opening with a zero byte belong to
// the reserved platform space and are never handed out.
func Derive(maker swaplock.Address, nonce uint64) (swaplock.Address, uint8, error) {
	if err := maker.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "maker")
	}
	for proof := 255; proof >= 0; proof-- {
		addr := DeriveWithProof(maker, nonce, uint8(proof))
		if addr[0] != 0 {
			return addr, uint8(proof), nil
		}
	}
	return nil, 0, errors.Wrapf(ErrDerivationExhausted, "maker %s nonce %d", maker, nonce)
}

// DeriveWithProof computes the escrow address of a (maker, nonce, proof)
// triple. It performs no search and accepts any proof byte, so callers
// must compare the result against the claimed address themselves.
func DeriveWithProof(maker swaplock.Address, nonce uint64, proof uint8) swaplock.Address {
	return SeedCondition(maker, nonce, proof).Address()
}

// SeedCondition is the condition an escrow address derives from. The
// escrow owns its custody holding under this address and signs with the
// condition when releasing or refunding the locked offer.
func SeedCondition(maker swaplock.Address, nonce uint64, proof uint8) swaplock.Condition {
	seed := make([]byte, 0, len(maker)+9)
	seed = append(seed, maker...)
	seed = appendUint64(seed, nonce)
	seed = append(seed, proof)
	return swaplock.NewCondition("escrow", "seed", seed)
}
