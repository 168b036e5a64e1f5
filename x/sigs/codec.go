package sigs

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock/crypto"
	"github.com/lockboxlabs/swaplock/errors"
)

// The types in this file serialize following the protobuf encoding rules,
// so the stored bytes are the same bytes a generated codec would produce.
// Field numbers are part of the storage contract and must not be reused.

// UserData is the stored state of one signing identity: the public key it
// authenticates with and the sequence of the next transaction it must sign.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
//
// A given signer must submit transactions with the sequence number
// increasing by 1 each time (starting at 0).
type StdSignature struct {
	Sequence  int64
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// BumpSequenceMsg advances the sequence of the signer without any other
// effect. It invalidates transactions signed with lower sequence values.
type BumpSequenceMsg struct {
	Increment uint64
}

// GetSequence returns the sequence, tolerating a nil receiver like any
// generated getter would.
func (s *StdSignature) GetSequence() int64 {
	if s == nil {
		return 0
	}
	return s.Sequence
}

// GetPubkey returns the public key, tolerating a nil receiver.
func (s *StdSignature) GetPubkey() *crypto.PublicKey {
	if s == nil {
		return nil
	}
	return s.Pubkey
}

func (u *UserData) Marshal() ([]byte, error) {
	out := []byte{}
	var err error
	if out, err = appendMessageField(out, 0xa, u.Pubkey); err != nil {
		return nil, err
	}
	out = appendUvarintField(out, 0x10, uint64(u.Sequence))
	return out, nil
}

func (u *UserData) Unmarshal(data []byte) error {
	*u = UserData{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0xa:
			var raw []byte
			raw, data, err = cutBytesField(data[1:])
			if err == nil {
				u.Pubkey = &crypto.PublicKey{}
				err = u.Pubkey.Unmarshal(raw)
			}
		case 0x10:
			var val uint64
			val, data, err = cutUvarintField(data[1:])
			u.Sequence = int64(val)
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	out := []byte{}
	var err error
	out = appendUvarintField(out, 0x8, uint64(s.Sequence))
	if out, err = appendMessageField(out, 0x12, s.Pubkey); err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 0x1a, s.Signature); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *StdSignature) Unmarshal(data []byte) error {
	*s = StdSignature{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0x8:
			var val uint64
			val, data, err = cutUvarintField(data[1:])
			s.Sequence = int64(val)
		case 0x12:
			var raw []byte
			raw, data, err = cutBytesField(data[1:])
			if err == nil {
				s.Pubkey = &crypto.PublicKey{}
				err = s.Pubkey.Unmarshal(raw)
			}
		case 0x1a:
			var raw []byte
			raw, data, err = cutBytesField(data[1:])
			if err == nil {
				s.Signature = &crypto.Signature{}
				err = s.Signature.Unmarshal(raw)
			}
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendUvarintField(out, 0x8, m.Increment)
	return out, nil
}

func (m *BumpSequenceMsg) Unmarshal(data []byte) error {
	*m = BumpSequenceMsg{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0x8:
			m.Increment, data, err = cutUvarintField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type marshaler interface {
	Marshal() ([]byte, error)
}

// appendMessageField writes an embedded message field, skipping nil
// messages the same way proto3 skips empty fields.
func appendMessageField(out []byte, header byte, msg marshaler) ([]byte, error) {
	if msg == nil {
		return out, nil
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, err
	}
	return appendBytesField(out, header, raw), nil
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
