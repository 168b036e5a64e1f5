package sigs

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// NextNonce returns the next sequence value that should be used during a
// transaction signing.
// Any address can hold a sequence. In practice you always want to acquire
// the value for the signer. You can get the signers address by calling
//
//	address := <crypto.Signer>.PublicKey().Address()
func NextNonce(db swaplock.ReadOnlyKVStore, signer swaplock.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}

	// If not yet present, sequence counting starts with zero.
	return 0, nil
}
