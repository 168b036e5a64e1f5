package funds

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Ensure we implement the Msg interface
var _ swaplock.Msg = (*SendMsg)(nil)

const (
	pathSend = "funds/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return pathSend
}

// Validate makes sure that this is sensible.
func (s *SendMsg) Validate() error {
	if s.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := s.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := s.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	return nil
}

// FeeTx is implemented by any transaction that can declare fee information.
type FeeTx interface {
	GetFees() *FeeInfo
}

// DefaultPayer makes sure there is a payer.
// If one was already declared, returns f.
// If none was set, returns a new FeeInfo with the given address as payer.
func (f *FeeInfo) DefaultPayer(addr swaplock.Address) *FeeInfo {
	if len(f.GetPayer()) != 0 {
		return f
	}
	return &FeeInfo{
		Payer: addr,
		Fees:  f.GetFees(),
	}
}

// Validate makes sure the fee info is sensible. A zero fee is legal, a
// missing payer is not.
func (f *FeeInfo) Validate() error {
	if f == nil {
		return errors.Wrap(errors.ErrInput, "nil fee info")
	}
	return errors.Wrap(f.Payer.Validate(), "payer")
}
