package escrow

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Instructions share one binding wire shape: a single numeric tag byte
// followed by a fixed width payload. The tag values and field offsets are
// the public contract of the package and can never change.
//
//	make    tag 0, 85 bytes: nonce 8, ask 8, offer 8, maker, asset a, asset b
//	take    tag 1, 101 bytes: taker, maker, escrow, asset a, asset b
//	refund  tag 2, 61 bytes: maker, escrow, asset a
//
// Amounts are big endian, addresses are 20 bytes each.

const (
	tagMake   = 0x00
	tagTake   = 0x01
	tagRefund = 0x02
)

var (
	makeWireSize   = 1 + 8 + 8 + 8 + 3*swaplock.AddressLength
	takeWireSize   = 1 + 5*swaplock.AddressLength
	refundWireSize = 1 + 3*swaplock.AddressLength
)

// DecodeInstruction routes raw instruction bytes by their tag and decodes
// the matching message. Unknown tags are rejected before any payload
// inspection.
func DecodeInstruction(data []byte) (swaplock.Msg, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty instruction")
	}
	switch data[0] {
	case tagMake:
		var msg MakeMsg
		if err := msg.Unmarshal(data); err != nil {
			return nil, err
		}
		return &msg, nil
	case tagTake:
		var msg TakeMsg
		if err := msg.Unmarshal(data); err != nil {
			return nil, err
		}
		return &msg, nil
	case tagRefund:
		var msg RefundMsg
		if err := msg.Unmarshal(data); err != nil {
			return nil, err
		}
		return &msg, nil
	}
	return nil, errors.Wrapf(ErrUnknownInstruction, "tag %d", data[0])
}

// EncodeInstruction serializes an escrow message into instruction bytes.
func EncodeInstruction(msg swaplock.Msg) ([]byte, error) {
	switch msg := msg.(type) {
	case *MakeMsg:
		return msg.Marshal()
	case *TakeMsg:
		return msg.Marshal()
	case *RefundMsg:
		return msg.Marshal()
	}
	return nil, errors.Wrapf(ErrUnknownInstruction, "%T", msg)
}

func (m *MakeMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, makeWireSize)
	out = append(out, tagMake)
	out = appendUint64(out, m.DealNonce)
	out = appendUint64(out, m.AskAmount)
	out = appendUint64(out, m.OfferAmount)
	out = append(out, m.Maker...)
	out = append(out, m.AssetA...)
	out = append(out, m.AssetB...)
	return out, nil
}

func (m *MakeMsg) Unmarshal(data []byte) error {
	if len(data) != makeWireSize {
		return errors.Wrapf(errors.ErrInput, "make instruction of %d bytes", len(data))
	}
	if data[0] != tagMake {
		return errors.Wrapf(errors.ErrInput, "make instruction tag %d", data[0])
	}
	m.DealNonce = binary.BigEndian.Uint64(data[1:9])
	m.AskAmount = binary.BigEndian.Uint64(data[9:17])
	m.OfferAmount = binary.BigEndian.Uint64(data[17:25])
	m.Maker = cutAddress(data[25:45])
	m.AssetA = cutAddress(data[45:65])
	m.AssetB = cutAddress(data[65:85])
	return nil
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, takeWireSize)
	out = append(out, tagTake)
	out = append(out, m.Taker...)
	out = append(out, m.Maker...)
	out = append(out, m.EscrowAddress...)
	out = append(out, m.AssetA...)
	out = append(out, m.AssetB...)
	return out, nil
}

func (m *TakeMsg) Unmarshal(data []byte) error {
	if len(data) != takeWireSize {
		return errors.Wrapf(errors.ErrInput, "take instruction of %d bytes", len(data))
	}
	if data[0] != tagTake {
		return errors.Wrapf(errors.ErrInput, "take instruction tag %d", data[0])
	}
	m.Taker = cutAddress(data[1:21])
	m.Maker = cutAddress(data[21:41])
	m.EscrowAddress = cutAddress(data[41:61])
	m.AssetA = cutAddress(data[61:81])
	m.AssetB = cutAddress(data[81:101])
	return nil
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, refundWireSize)
	out = append(out, tagRefund)
	out = append(out, m.Maker...)
	out = append(out, m.EscrowAddress...)
	out = append(out, m.AssetA...)
	return out, nil
}

func (m *RefundMsg) Unmarshal(data []byte) error {
	if len(data) != refundWireSize {
		return errors.Wrapf(errors.ErrInput, "refund instruction of %d bytes", len(data))
	}
	if data[0] != tagRefund {
		return errors.Wrapf(errors.ErrInput, "refund instruction tag %d", data[0])
	}
	m.Maker = cutAddress(data[1:21])
	m.EscrowAddress = cutAddress(data[21:41])
	m.AssetA = cutAddress(data[41:61])
	return nil
}
