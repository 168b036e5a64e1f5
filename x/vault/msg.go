package vault

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Ensure we implement the Msg interface
var (
	_ swaplock.Msg = (*DepositMsg)(nil)
	_ swaplock.Msg = (*WithdrawMsg)(nil)
)

const (
	pathDeposit  = "vault/deposit"
	pathWithdraw = "vault/withdraw"

	depositCost  int64 = 100
	withdrawCost int64 = 100
)

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return pathDeposit
}

// Validate makes sure that this is sensible.
func (m *DepositMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// Path returns the routing path for this message.
func (WithdrawMsg) Path() string {
	return pathWithdraw
}

// Validate makes sure that this is sensible.
func (m *WithdrawMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	return nil
}
