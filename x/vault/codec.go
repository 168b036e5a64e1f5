package vault

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// The messages serialize following the protobuf encoding rules, so the
// wire bytes are the same bytes a generated codec would produce.

// DepositMsg locks an amount of one asset in the sender's vault.
type DepositMsg struct {
	Owner  swaplock.Address
	Asset  swaplock.Address
	Amount uint64
}

// WithdrawMsg empties the sender's vault back into the sender's holding.
type WithdrawMsg struct {
	Owner swaplock.Address
	Asset swaplock.Address
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, m.Owner)
	out = appendBytesField(out, 0x12, m.Asset)
	out = appendUvarintField(out, 0x18, m.Amount)
	return out, nil
}

func (m *DepositMsg) Unmarshal(data []byte) error {
	*m = DepositMsg{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			m.Owner, data, err = cutBytesField(data[1:])
		case 0x12:
			m.Asset, data, err = cutBytesField(data[1:])
		case 0x18:
			m.Amount, data, err = cutUvarintField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, m.Owner)
	out = appendBytesField(out, 0x12, m.Asset)
	return out, nil
}

func (m *WithdrawMsg) Unmarshal(data []byte) error {
	*m = WithdrawMsg{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			m.Owner, data, err = cutBytesField(data[1:])
		case 0x12:
			m.Asset, data, err = cutBytesField(data[1:])
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
