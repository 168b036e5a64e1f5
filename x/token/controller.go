package token

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// RentCollector is the slice of the funds controller this extension needs
// to back every holding with a storage deposit.
type RentCollector interface {
	ChargeRent(db swaplock.KVStore, payer swaplock.Address, amount uint64) error
	RefundRent(db swaplock.KVStore, recipient swaplock.Address, amount uint64) error
}

// Controller is the interface other extensions program against to keep and
// move asset holdings. BaseController should work plenty fine.
type Controller interface {
	Balance(db swaplock.ReadOnlyKVStore, owner, asset swaplock.Address) (uint64, error)
	CreateClass(db swaplock.KVStore, ticker string, issuer swaplock.Address) (swaplock.Address, error)
	Mint(db swaplock.KVStore, asset, dest swaplock.Address, amount uint64) error
	Move(db swaplock.KVStore, src Authority, asset, dest swaplock.Address, amount uint64) error
	EnsureHolding(db swaplock.KVStore, owner, asset swaplock.Address, payer Authority) (swaplock.Address, bool, error)
	CloseHolding(db swaplock.KVStore, owner, asset, rentTo swaplock.Address) error
}

// BaseController implements the Controller interface on top of the asset
// and holding buckets.
type BaseController struct {
	assets   AssetBucket
	holdings HoldingBucket
	rent     RentCollector
}

var _ Controller = BaseController{}

// NewController returns a controller using the given buckets, paying and
// refunding holding rent through the given collector.
func NewController(assets AssetBucket, holdings HoldingBucket, rent RentCollector) BaseController {
	return BaseController{
		assets:   assets,
		holdings: holdings,
		rent:     rent,
	}
}

// loadHolding returns the holding of owner in asset, or nil if it was never
// created. A stored record that disagrees with the identity it was found
// under is reported as a mismatch, never returned.
func (c BaseController) loadHolding(db swaplock.ReadOnlyKVStore, owner, asset swaplock.Address) (*Holding, error) {
	holding, err := c.holdings.Get(db, HoldingID(owner, asset))
	if err != nil || holding == nil {
		return nil, err
	}
	if !holding.Owner.Equals(owner) || !holding.Asset.Equals(asset) {
		return nil, errors.Wrapf(ErrHoldingMismatch, "holding of %s", owner)
	}
	return holding, nil
}

// Balance returns the amount held by owner in asset. Unlike a native unit
// wallet, a holding is an explicit account, so asking for one that does not
// exist is an error.
func (c BaseController) Balance(db swaplock.ReadOnlyKVStore, owner, asset swaplock.Address) (uint64, error) {
	holding, err := c.loadHolding(db, owner, asset)
	if err != nil {
		return 0, err
	}
	if holding == nil {
		return 0, errors.Wrapf(errors.ErrNotFound, "holding of %s", owner)
	}
	return holding.Amount, nil
}

// CreateClass registers a new asset class and returns its derived identity.
func (c BaseController) CreateClass(db swaplock.KVStore, ticker string, issuer swaplock.Address) (swaplock.Address, error) {
	info := &AssetInfo{Ticker: ticker, Issuer: issuer}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	switch existing, err := c.assets.Get(db, AssetID(ticker)); {
	case err != nil:
		return nil, err
	case existing != nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", ticker)
	}
	if err := c.assets.Save(db, info); err != nil {
		return nil, err
	}
	return AssetID(ticker), nil
}

// Mint credits new supply to an existing holding. It does not provision
// holdings, callers combine it with EnsureHolding when the destination may
// not exist yet.
func (c BaseController) Mint(db swaplock.KVStore, asset, dest swaplock.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	holding, err := c.loadHolding(db, dest, asset)
	if err != nil {
		return err
	}
	if holding == nil {
		return errors.Wrapf(errors.ErrNotFound, "holding of %s", dest)
	}
	if holding.Amount+amount < holding.Amount {
		return errors.Wrapf(errors.ErrOverflow, "mint %d to %s", amount, dest)
	}
	holding.Amount += amount
	return c.holdings.Save(db, holding)
}

// Move debits amount of asset from the holding the authority speaks for and
// credits the destination holding. Both holdings must exist, the
// destination is provisioned separately through EnsureHolding. On error
// neither holding changed.
func (c BaseController) Move(db swaplock.KVStore, src Authority, asset, dest swaplock.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if len(src.Address()) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "empty authority")
	}
	sender, err := c.loadHolding(db, src.Address(), asset)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrNotFound, "source holding of %s", src.Address())
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "move %d of %d", amount, sender.Amount)
	}
	// nothing changes when moving within one holding
	if src.Address().Equals(dest) {
		return nil
	}
	recipient, err := c.loadHolding(db, dest, asset)
	if err != nil {
		return err
	}
	if recipient == nil {
		return errors.Wrapf(errors.ErrNotFound, "destination holding of %s", dest)
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrapf(errors.ErrOverflow, "credit %d to %s", amount, dest)
	}

	sender.Amount -= amount
	if err := c.holdings.Save(db, sender); err != nil {
		return err
	}
	recipient.Amount += amount
	return c.holdings.Save(db, recipient)
}

// EnsureHolding guarantees a holding of owner in asset exists and returns
// its identity. An existing holding is left alone. A new one requires a
// registered asset class and charges the holding rent to the payer.
func (c BaseController) EnsureHolding(db swaplock.KVStore, owner, asset swaplock.Address, payer Authority) (swaplock.Address, bool, error) {
	key := HoldingID(owner, asset)
	holding, err := c.loadHolding(db, owner, asset)
	if err != nil {
		return nil, false, err
	}
	if holding != nil {
		return key, false, nil
	}

	class, err := c.assets.Get(db, asset)
	if err != nil {
		return nil, false, err
	}
	if class == nil {
		return nil, false, errors.Wrapf(errors.ErrNotFound, "asset class %s", asset)
	}
	if len(payer.Address()) == 0 {
		return nil, false, errors.Wrap(errors.ErrUnauthorized, "empty authority")
	}
	conf := mustLoadConf(db)
	if err := c.rent.ChargeRent(db, payer.Address(), conf.HoldingRent); err != nil {
		return nil, false, err
	}
	holding = &Holding{Owner: owner, Asset: asset}
	if err := c.holdings.Save(db, holding); err != nil {
		return nil, false, err
	}
	return key, true, nil
}

// CloseHolding deletes an empty holding and refunds its storage deposit to
// the given recipient.
func (c BaseController) CloseHolding(db swaplock.KVStore, owner, asset, rentTo swaplock.Address) error {
	holding, err := c.loadHolding(db, owner, asset)
	if err != nil {
		return err
	}
	if holding == nil {
		return errors.Wrapf(errors.ErrNotFound, "holding of %s", owner)
	}
	if holding.Amount != 0 {
		return errors.Wrap(errors.ErrState, "holding not empty")
	}
	if err := c.holdings.Delete(db, HoldingID(owner, asset)); err != nil {
		return err
	}
	conf := mustLoadConf(db)
	return c.rent.RefundRent(db, rentTo, conf.HoldingRent)
}
