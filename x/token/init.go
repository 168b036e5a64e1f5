package token

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/gconf"
	"github.com/lockboxlabs/swaplock/x/funds"
)

const optKey = "token"

var _ swaplock.Initializer = (*Initializer)(nil)

// Minter is the slice of the funds controller the genesis initializer needs
// to conjure the storage deposits backing pre-funded holdings.
type Minter interface {
	Credit(db swaplock.KVStore, dest swaplock.Address, amount uint64) error
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Minter Minter
}

// FromGenesis will parse initial asset classes and holdings from the
// genesis and save them in the database. Every holding created here puts
// one rent deposit into the pool, the same one CloseHolding pays back
// later.
func (i *Initializer) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, "token", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		Assets []struct {
			Ticker string           `json:"ticker"`
			Issuer swaplock.Address `json:"issuer"`
		} `json:"assets"`
		Holdings []struct {
			Owner  swaplock.Address `json:"owner"`
			Ticker string           `json:"ticker"`
			Amount uint64           `json:"amount"`
		} `json:"holdings"`
	}
	if err := opts.ReadOptions(optKey, &genesis); err != nil {
		return err
	}

	assets := NewAssetBucket()
	for j, a := range genesis.Assets {
		info := &AssetInfo{Ticker: a.Ticker, Issuer: a.Issuer}
		if err := info.Validate(); err != nil {
			return errors.Wrapf(err, "invalid asset at position %d", j)
		}
		if err := assets.Save(db, info); err != nil {
			return err
		}
	}

	holdings := NewHoldingBucket()
	for j, h := range genesis.Holdings {
		if err := h.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "invalid holding at position %d", j)
		}
		asset := AssetID(h.Ticker)
		class, err := assets.Get(db, asset)
		if err != nil {
			return err
		}
		if class == nil {
			return errors.Wrapf(errors.ErrNotFound, "holding at position %d has unknown ticker %q", j, h.Ticker)
		}
		holding := &Holding{Owner: h.Owner, Asset: asset, Amount: h.Amount}
		if err := holdings.Save(db, holding); err != nil {
			return err
		}
		if err := i.Minter.Credit(db, funds.RentPool(), conf.HoldingRent); err != nil {
			return errors.Wrap(err, "back holding rent")
		}
	}
	return nil
}
