package token

import (
	"regexp"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/orm"
)

const (
	// AssetBucketName is where we store the asset classes.
	AssetBucketName = "tokc"
	// HoldingBucketName is where we store the holdings.
	HoldingBucketName = "tokh"
)

var isTicker = regexp.MustCompile(`^[A-Z]{3,6}$`).MatchString

// AssetID returns the deterministic identity of the asset class with the
// given ticker. Whoever knows the ticker can recompute it.
func AssetID(ticker string) swaplock.Address {
	return swaplock.NewCondition("token", "class", []byte(ticker)).Address()
}

// HoldingID returns the deterministic identity of the holding the given
// owner keeps in the given asset.
func HoldingID(owner, asset swaplock.Address) swaplock.Address {
	data := make([]byte, 0, len(owner)+len(asset))
	data = append(data, owner...)
	data = append(data, asset...)
	return swaplock.NewCondition("token", "hold", data).Address()
}

var _ orm.CloneableData = (*AssetInfo)(nil)

func (a *AssetInfo) Validate() error {
	if !isTicker(a.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker %q", a.Ticker)
	}
	if err := a.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	return nil
}

func (a *AssetInfo) Copy() orm.CloneableData {
	return &AssetInfo{
		Ticker: a.Ticker,
		Issuer: a.Issuer,
	}
}

var _ orm.CloneableData = (*Holding)(nil)

func (h *Holding) Validate() error {
	if err := h.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := h.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	return nil
}

func (h *Holding) Copy() orm.CloneableData {
	return &Holding{
		Owner:  h.Owner,
		Asset:  h.Asset,
		Amount: h.Amount,
	}
}

// AssetBucket is a type-safe wrapper storing asset classes under their
// identity.
type AssetBucket struct {
	orm.Bucket
}

// NewAssetBucket initializes an AssetBucket with the default name.
func NewAssetBucket() AssetBucket {
	return AssetBucket{
		Bucket: orm.NewBucket(AssetBucketName, orm.NewSimpleObj(nil, &AssetInfo{})),
	}
}

// Get returns the asset class stored under the given identity, or nil if no
// such class was registered.
func (b AssetBucket) Get(db swaplock.ReadOnlyKVStore, asset swaplock.Address) (*AssetInfo, error) {
	obj, err := b.Bucket.Get(db, asset)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*AssetInfo), nil
}

// Save persists the asset class under its derived identity.
func (b AssetBucket) Save(db swaplock.KVStore, info *AssetInfo) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(AssetID(info.Ticker), info))
}

// HoldingBucket is a type-safe wrapper storing holdings under their
// identity, with a secondary index over the owner.
type HoldingBucket struct {
	orm.Bucket
}

// NewHoldingBucket initializes a HoldingBucket with the default name.
func NewHoldingBucket() HoldingBucket {
	b := orm.NewBucket(HoldingBucketName, orm.NewSimpleObj(nil, &Holding{})).
		WithIndex("owner", holdingOwner, false)
	return HoldingBucket{Bucket: b}
}

func holdingOwner(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "cannot index nil holding")
	}
	holding, ok := obj.Value().(*Holding)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "can only index holdings")
	}
	return holding.Owner, nil
}

// Get returns the holding stored under the given identity, or nil if it was
// never created.
func (b HoldingBucket) Get(db swaplock.ReadOnlyKVStore, key swaplock.Address) (*Holding, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*Holding), nil
}

// Save persists the holding under its derived identity.
func (b HoldingBucket) Save(db swaplock.KVStore, holding *Holding) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(HoldingID(holding.Owner, holding.Asset), holding))
}

// ByOwner returns all holdings of one owner, resolved through the owner
// index.
func (b HoldingBucket) ByOwner(db swaplock.ReadOnlyKVStore, owner swaplock.Address) ([]*Holding, error) {
	objs, err := b.GetIndexed(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	holdings := make([]*Holding, 0, len(objs))
	for _, obj := range objs {
		if obj == nil || obj.Value() == nil {
			continue
		}
		holdings = append(holdings, obj.Value().(*Holding))
	}
	return holdings, nil
}
