package app

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x/funds"
	"github.com/lockboxlabs/swaplock/x/sigs"
	"github.com/lockboxlabs/swaplock/x/token"
	"github.com/lockboxlabs/swaplock/x/vault"
)

// The transaction envelope serializes following the protobuf encoding
// rules, so the wire bytes are the same bytes a generated codec would
// produce. Field numbers are part of the wire contract and must not be
// reused.

// Tx is the transaction envelope of the application. Every transaction
// carries optional fee information, the signatures authorizing it and
// exactly one payload.
type Tx struct {
	Fees       *funds.FeeInfo
	Signatures []*sigs.StdSignature
	// Sum carries exactly one of the payload messages.
	Sum isTx_Sum
}

type isTx_Sum interface {
	isTx_Sum()
}

// Tx_EscrowCall carries a raw escrow instruction, tag byte first. The
// payload keeps the external wire format so callers can submit the exact
// bytes they would send to any other deployment of the escrow program.
type Tx_EscrowCall struct {
	EscrowCall []byte
}

type Tx_SendMsg struct {
	SendMsg *funds.SendMsg
}

type Tx_CreateAssetMsg struct {
	CreateAssetMsg *token.CreateAssetMsg
}

type Tx_MintMsg struct {
	MintMsg *token.MintMsg
}

type Tx_DepositMsg struct {
	DepositMsg *vault.DepositMsg
}

type Tx_WithdrawMsg struct {
	WithdrawMsg *vault.WithdrawMsg
}

type Tx_BumpSequenceMsg struct {
	BumpSequenceMsg *sigs.BumpSequenceMsg
}

func (*Tx_EscrowCall) isTx_Sum()      {}
func (*Tx_SendMsg) isTx_Sum()         {}
func (*Tx_CreateAssetMsg) isTx_Sum()  {}
func (*Tx_MintMsg) isTx_Sum()         {}
func (*Tx_DepositMsg) isTx_Sum()      {}
func (*Tx_WithdrawMsg) isTx_Sum()     {}
func (*Tx_BumpSequenceMsg) isTx_Sum() {}

// GetSum returns the payload wrapper, tolerating a nil receiver like any
// generated getter would.
func (tx *Tx) GetSum() isTx_Sum {
	if tx == nil {
		return nil
	}
	return tx.Sum
}

func (tx *Tx) Marshal() ([]byte, error) {
	out := []byte{}
	if tx.Fees != nil {
		raw, err := tx.Fees.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "fees")
		}
		out = appendBytesField(out, 0xa, raw)
	}
	for i, sig := range tx.Signatures {
		raw, err := sig.Marshal()
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		out = appendBytesField(out, 0x12, raw)
	}
	switch sum := tx.Sum.(type) {
	case nil:
	case *Tx_EscrowCall:
		out = appendBytesField(out, 0x1a, sum.EscrowCall)
	case *Tx_SendMsg:
		raw, err := sum.SendMsg.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "send msg")
		}
		out = appendBytesField(out, 0x22, raw)
	case *Tx_CreateAssetMsg:
		raw, err := sum.CreateAssetMsg.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "create asset msg")
		}
		out = appendBytesField(out, 0x2a, raw)
	case *Tx_MintMsg:
		raw, err := sum.MintMsg.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "mint msg")
		}
		out = appendBytesField(out, 0x32, raw)
	case *Tx_DepositMsg:
		raw, err := sum.DepositMsg.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "deposit msg")
		}
		out = appendBytesField(out, 0x3a, raw)
	case *Tx_WithdrawMsg:
		raw, err := sum.WithdrawMsg.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "withdraw msg")
		}
		out = appendBytesField(out, 0x42, raw)
	case *Tx_BumpSequenceMsg:
		raw, err := sum.BumpSequenceMsg.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "bump sequence msg")
		}
		out = appendBytesField(out, 0x4a, raw)
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown payload %T", sum)
	}
	return out, nil
}

func (tx *Tx) Unmarshal(data []byte) error {
	*tx = Tx{}
	for len(data) > 0 {
		header := data[0]
		var (
			raw []byte
			err error
		)
		raw, data, err = cutBytesField(data[1:])
		if err != nil {
			return err
		}
		switch header {
		case 0xa:
			fees := &funds.FeeInfo{}
			if err := fees.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "fees")
			}
			tx.Fees = fees
		case 0x12:
			sig := &sigs.StdSignature{}
			if err := sig.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "signature")
			}
			tx.Signatures = append(tx.Signatures, sig)
		case 0x1a:
			tx.Sum = &Tx_EscrowCall{EscrowCall: raw}
		case 0x22:
			msg := &funds.SendMsg{}
			if err := msg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "send msg")
			}
			tx.Sum = &Tx_SendMsg{SendMsg: msg}
		case 0x2a:
			msg := &token.CreateAssetMsg{}
			if err := msg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "create asset msg")
			}
			tx.Sum = &Tx_CreateAssetMsg{CreateAssetMsg: msg}
		case 0x32:
			msg := &token.MintMsg{}
			if err := msg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "mint msg")
			}
			tx.Sum = &Tx_MintMsg{MintMsg: msg}
		case 0x3a:
			msg := &vault.DepositMsg{}
			if err := msg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "deposit msg")
			}
			tx.Sum = &Tx_DepositMsg{DepositMsg: msg}
		case 0x42:
			msg := &vault.WithdrawMsg{}
			if err := msg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "withdraw msg")
			}
			tx.Sum = &Tx_WithdrawMsg{WithdrawMsg: msg}
		case 0x4a:
			msg := &sigs.BumpSequenceMsg{}
			if err := msg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "bump sequence msg")
			}
			tx.Sum = &Tx_BumpSequenceMsg{BumpSequenceMsg: msg}
		default:
			return errors.Wrapf(errors.ErrInput, "unknown field header %#x", header)
		}
	}
	return nil
}

// appendBytesField writes a length-delimited field, skipping empty payloads.
func appendBytesField(out []byte, header byte, raw []byte) []byte {
	if len(raw) == 0 {
		return out
	}
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], uint64(len(raw)))
	out = append(out, header)
	out = append(out, scratch[:n]...)
	return append(out, raw...)
}

// cutBytesField parses the length-delimited payload that follows a field
// header and returns a copy of it plus the bytes after it.
func cutBytesField(data []byte) ([]byte, []byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, nil, errors.Wrap(errors.ErrInput, "invalid length header")
	}
	rest := data[n:]
	if uint64(len(rest)) < size {
		return nil, nil, errors.Wrap(errors.ErrInput, "truncated payload")
	}
	raw := make([]byte, size)
	copy(raw, rest[:size])
	return raw, rest[size:], nil
}
