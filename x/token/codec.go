package token

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// The types in this file serialize following the protobuf encoding rules,
// so the stored bytes are the same bytes a generated codec would produce.
// Field numbers are part of the storage contract and must not be reused.

// AssetInfo describes one registered asset class. It is stored under the
// asset identity derived from the ticker.
type AssetInfo struct {
	Ticker string
	// Issuer is the only address allowed to mint units of this asset.
	Issuer swaplock.Address
}

// Holding is the balance one owner keeps in one asset. It is stored under
// the holding identity derived from the owner and asset pair, the owner and
// asset fields pin that binding in the value itself.
type Holding struct {
	Owner  swaplock.Address
	Asset  swaplock.Address
	Amount uint64
}

// Configuration is the state of the token package that can be set on chain
// initialization.
type Configuration struct {
	// HoldingRent is the native unit deposit collected when a holding is
	// created and returned when it is closed.
	HoldingRent uint64 `json:"holding_rent"`
}

// CreateAssetMsg registers a new asset class.
type CreateAssetMsg struct {
	Ticker string
	Issuer swaplock.Address
}

// MintMsg credits freshly issued units of an asset to the holding of dest.
type MintMsg struct {
	Asset  swaplock.Address
	Dest   swaplock.Address
	Amount uint64
}

func (a *AssetInfo) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, []byte(a.Ticker))
	out = appendBytesField(out, 0x12, a.Issuer)
	return out, nil
}

func (a *AssetInfo) Unmarshal(data []byte) error {
	*a = AssetInfo{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			var raw []byte
			raw, data, err = cutBytesField(data[1:])
			a.Ticker = string(raw)
		case 0x12:
			a.Issuer, data, err = cutBytesField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Holding) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, h.Owner)
	out = appendBytesField(out, 0x12, h.Asset)
	out = appendUvarintField(out, 0x18, h.Amount)
	return out, nil
}

func (h *Holding) Unmarshal(data []byte) error {
	*h = Holding{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			h.Owner, data, err = cutBytesField(data[1:])
		case 0x12:
			h.Asset, data, err = cutBytesField(data[1:])
		case 0x18:
			h.Amount, data, err = cutUvarintField(data[1:])
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
	out = appendUvarintField(out, 0x8, c.HoldingRent)
	return out, nil
}

func (c *Configuration) Unmarshal(data []byte) error {
	*c = Configuration{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0x8:
			c.HoldingRent, data, err = cutUvarintField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *CreateAssetMsg) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, []byte(m.Ticker))
	out = appendBytesField(out, 0x12, m.Issuer)
	return out, nil
}

func (m *CreateAssetMsg) Unmarshal(data []byte) error {
	*m = CreateAssetMsg{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			var raw []byte
			raw, data, err = cutBytesField(data[1:])
			m.Ticker = string(raw)
		case 0x12:
			m.Issuer, data, err = cutBytesField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *MintMsg) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendBytesField(out, 0xa, m.Asset)
	out = appendBytesField(out, 0x12, m.Dest)
	out = appendUvarintField(out, 0x18, m.Amount)
	return out, nil
}

func (m *MintMsg) Unmarshal(data []byte) error {
	*m = MintMsg{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			m.Asset, data, err = cutBytesField(data[1:])
		case 0x12:
			m.Dest, data, err = cutBytesField(data[1:])
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
