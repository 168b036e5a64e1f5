package app

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x/escrow"
	"github.com/lockboxlabs/swaplock/x/funds"
	"github.com/lockboxlabs/swaplock/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (swaplock.Tx, error) {
	tx := new(Tx)
	err := tx.Unmarshal(bz)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ swaplock.Tx = (*Tx)(nil)
var _ funds.FeeTx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg unpacks the payload of the envelope. An escrow call is carried as
// raw instruction bytes and decoded here, so the numeric tag routing stays
// in one place.
func (tx *Tx) GetMsg() (swaplock.Msg, error) {
	switch sum := tx.GetSum().(type) {
	case *Tx_EscrowCall:
		return escrow.DecodeInstruction(sum.EscrowCall)
	case *Tx_SendMsg:
		return sum.SendMsg, nil
	case *Tx_CreateAssetMsg:
		return sum.CreateAssetMsg, nil
	case *Tx_MintMsg:
		return sum.MintMsg, nil
	case *Tx_DepositMsg:
		return sum.DepositMsg, nil
	case *Tx_WithdrawMsg:
		return sum.WithdrawMsg, nil
	case *Tx_BumpSequenceMsg:
		return sum.BumpSequenceMsg, nil
	case nil:
		return nil, errors.Wrap(errors.ErrInput, "transaction without payload")
	}
	// we must have covered every payload type above
	panic(tx.Sum)
}

// GetSignBytes returns the bytes that are certified by the signatures. They
// come from the transaction content only, never from previous signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// GetSignatures returns the signatures authorizing the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetFees returns the declared fee information, or nil if the transaction
// declares none.
func (tx *Tx) GetFees() *funds.FeeInfo {
	return tx.Fees
}
