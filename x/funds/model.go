package funds

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/orm"
)

// BucketName is where we store the wallets.
const BucketName = "fnds"

var _ orm.CloneableData = (*Wallet)(nil)

// Validate is a no-op, any balance a wallet can express is legal.
func (w *Wallet) Validate() error {
	return nil
}

// Copy produces a detached copy of the wallet.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{Balance: w.Balance}
}

// AsWallet extracts the wallet value from a bucket object. Returns nil for a
// nil object, panics if the object holds anything else.
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a funds.Bucket with the default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{})),
	}
}

// Get returns the wallet of the given address, or nil if it was never
// credited.
func (b Bucket) Get(db swaplock.ReadOnlyKVStore, addr swaplock.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	return AsWallet(obj), nil
}

// Save persists the wallet under the given address.
func (b Bucket) Save(db swaplock.KVStore, addr swaplock.Address, wallet *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(addr, wallet))
}
