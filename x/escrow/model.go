package escrow

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/orm"
)

// BucketName is where we store the escrow records.
const BucketName = "esc"

var _ orm.CloneableData = (*Escrow)(nil)

func (e *Escrow) Validate() error {
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.AssetA.Validate(); err != nil {
		return errors.Wrap(err, "asset a")
	}
	if err := e.AssetB.Validate(); err != nil {
		return errors.Wrap(err, "asset b")
	}
	if e.AskAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero ask")
	}
	return nil
}

func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Maker:     e.Maker,
		AssetA:    e.AssetA,
		AssetB:    e.AssetB,
		DealNonce: e.DealNonce,
		AskAmount: e.AskAmount,
		Proof:     e.Proof,
	}
}

// Bucket is a type-safe wrapper storing escrow records under their derived
// address, with a secondary index over the maker.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a Bucket with the default name.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Escrow{})).
		WithIndex("maker", escrowMaker, false)
	return Bucket{Bucket: b}
}

func escrowMaker(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "cannot index nil escrow")
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "can only index escrows")
	}
	return esc.Maker, nil
}

// Get returns the record stored under the given escrow address, or nil if
// no deal is open there.
func (b Bucket) Get(db swaplock.ReadOnlyKVStore, escrowAddr swaplock.Address) (*Escrow, error) {
	obj, err := b.Bucket.Get(db, escrowAddr)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*Escrow), nil
}

// Save persists the record under the address recomputed from its own
// maker, nonce and proof. A record can never sit under an address its
// fields do not derive.
func (b Bucket) Save(db swaplock.KVStore, esc *Escrow) error {
	key := DeriveWithProof(esc.Maker, esc.DealNonce, esc.Proof)
	return b.Bucket.Save(db, orm.NewSimpleObj(key, esc))
}

// ByMaker returns all open records of one maker, resolved through the
// maker index.
func (b Bucket) ByMaker(db swaplock.ReadOnlyKVStore, maker swaplock.Address) ([]*Escrow, error) {
	objs, err := b.GetIndexed(db, "maker", maker)
	if err != nil {
		return nil, err
	}
	escrows := make([]*Escrow, 0, len(objs))
	for _, obj := range objs {
		if obj == nil || obj.Value() == nil {
			continue
		}
		escrows = append(escrows, obj.Value().(*Escrow))
	}
	return escrows, nil
}
