package token

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Ensure we implement the Msg interface
var (
	_ swaplock.Msg = (*CreateAssetMsg)(nil)
	_ swaplock.Msg = (*MintMsg)(nil)
)

const (
	pathCreateAsset = "token/create_asset"
	pathMint        = "token/mint"

	createAssetCost int64 = 200
	mintCost        int64 = 100
)

// Path returns the routing path for this message.
func (CreateAssetMsg) Path() string {
	return pathCreateAsset
}

// Validate makes sure that this is sensible.
func (m *CreateAssetMsg) Validate() error {
	if !isTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker %q", m.Ticker)
	}
	if err := m.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	return nil
}

// Path returns the routing path for this message.
func (MintMsg) Path() string {
	return pathMint
}

// Validate makes sure that this is sensible.
func (m *MintMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	return nil
}
