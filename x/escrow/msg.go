package escrow

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Ensure we implement the Msg interface
var (
	_ swaplock.Msg = (*MakeMsg)(nil)
	_ swaplock.Msg = (*TakeMsg)(nil)
	_ swaplock.Msg = (*RefundMsg)(nil)
)

const (
	pathMake   = "escrow/make"
	pathTake   = "escrow/take"
	pathRefund = "escrow/refund"

	makeCost   int64 = 300
	takeCost   int64 = 100
	refundCost int64 = 100
)

// Path returns the routing path for this message.
func (MakeMsg) Path() string {
	return pathMake
}

// Validate makes sure that this is sensible.
func (m *MakeMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.AssetA.Validate(); err != nil {
		return errors.Wrap(err, "asset a")
	}
	if err := m.AssetB.Validate(); err != nil {
		return errors.Wrap(err, "asset b")
	}
	if m.OfferAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero offer")
	}
	if m.AskAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero ask")
	}
	return nil
}

// Path returns the routing path for this message.
func (TakeMsg) Path() string {
	return pathTake
}

// Validate makes sure that this is sensible.
func (m *TakeMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.EscrowAddress.Validate(); err != nil {
		return errors.Wrap(err, "escrow address")
	}
	if err := m.AssetA.Validate(); err != nil {
		return errors.Wrap(err, "asset a")
	}
	if err := m.AssetB.Validate(); err != nil {
		return errors.Wrap(err, "asset b")
	}
	return nil
}

// Path returns the routing path for this message.
func (RefundMsg) Path() string {
	return pathRefund
}

// Validate makes sure that this is sensible.
func (m *RefundMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.EscrowAddress.Validate(); err != nil {
		return errors.Wrap(err, "escrow address")
	}
	if err := m.AssetA.Validate(); err != nil {
		return errors.Wrap(err, "asset a")
	}
	return nil
}
