package funds

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// The types in this file serialize following the protobuf encoding rules,
// so the stored bytes are the same bytes a generated codec would produce.
// Field numbers are part of the storage contract and must not be reused.

// Wallet holds the spendable native unit balance of one address. It is
// stored under the address it belongs to, so the owner is not repeated in
// the value.
type Wallet struct {
	Balance uint64
}

// Configuration is the state of the funds package that can be set on chain
// initialization.
type Configuration struct {
	// MinimalFee is collected for every transaction, even when the
	// transaction declares no fee at all.
	MinimalFee uint64 `json:"minimal_fee"`
	// CollectorAddress is credited with every collected fee.
	CollectorAddress swaplock.Address `json:"collector_address"`
}

// FeeInfo is attached to a transaction to declare who pays how much for its
// processing.
type FeeInfo struct {
	Payer swaplock.Address
	Fees  uint64
}

// SendMsg moves native units between two wallets.
type SendMsg struct {
	Src    swaplock.Address
	Dest   swaplock.Address
	Amount uint64
	// Memo is a short human readable comment, it has no effect on the
	// transfer.
	Memo string
}

// GetPayer returns the declared payer, tolerating a nil receiver like any
// generated getter would.
func (f *FeeInfo) GetPayer() swaplock.Address {
	if f == nil {
		return nil
	}
	return f.Payer
}

// GetFees returns the declared fee, tolerating a nil receiver.
func (f *FeeInfo) GetFees() uint64 {
	if f == nil {
		return 0
	}
	return f.Fees
}

func (w *Wallet) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendUvarintField(out, 0x8, w.Balance)
	return out, nil
}

func (w *Wallet) Unmarshal(data []byte) error {
	*w = Wallet{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0x8:
			w.Balance, data, err = cutUvarintField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendUvarintField(out, 0x8, c.MinimalFee)
	out = appendBytesField(out, 0x12, c.CollectorAddress)
	return out, nil
}

func (c *Configuration) Unmarshal(data []byte) error {
	*c = Configuration{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0x8:
			c.MinimalFee, data, err = cutUvarintField(data[1:])
		case 0x12:
			c.CollectorAddress, data, err = cutBytesField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *FeeInfo) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, f.Payer)
	out = appendUvarintField(out, 0x10, f.Fees)
	return out, nil
}

func (f *FeeInfo) Unmarshal(data []byte) error {
	*f = FeeInfo{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			f.Payer, data, err = cutBytesField(data[1:])
		case 0x10:
			f.Fees, data, err = cutUvarintField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SendMsg) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, s.Src)
	out = appendBytesField(out, 0x12, s.Dest)
	out = appendUvarintField(out, 0x18, s.Amount)
	out = appendBytesField(out, 0x22, []byte(s.Memo))
	return out, nil
}

func (s *SendMsg) Unmarshal(data []byte) error {
	*s = SendMsg{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			s.Src, data, err = cutBytesField(data[1:])
		case 0x12:
			s.Dest, data, err = cutBytesField(data[1:])
		case 0x18:
			s.Amount, data, err = cutUvarintField(data[1:])
		case 0x22:
			var raw []byte
			raw, data, err = cutBytesField(data[1:])
			s.Memo = string(raw)
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// appendUvarintField writes a varint field, skipping the zero value the same
// way proto3 does.
func appendUvarintField(out []byte, header byte, val uint64) []byte {
	if val == 0 {
		return out
	}
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], val)
	out = append(out, header)
	return append(out, scratch[:n]...)
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

// cutUvarintField parses the varint that follows a field header and returns
// the bytes after it.
func cutUvarintField(data []byte) (uint64, []byte, error) {
	val, n := binary.Uvarint(data)
	if n <= 0 {
		return 0, nil, errors.Wrap(errors.ErrInput, "invalid varint")
	}
	return val, data[n:], nil
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
