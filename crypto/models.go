package crypto

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock/errors"
)

// PublicKey, PrivateKey and Signature all share the same wire shape: one
// length-delimited field (tag 1) holding the raw ed25519 bytes, the same
// bytes a protobuf compiler would produce for a single bytes arm. The
// algorithm is expressed in the field choice, so more schemes can be added
// later without breaking stored data.

type PublicKey struct {
	// Types that are valid to be assigned to Pub:
	//	*PublicKey_Ed25519
	Pub isPublicKey_Pub
}

type isPublicKey_Pub interface {
	isPublicKey_Pub()
}

type PublicKey_Ed25519 struct {
	Ed25519 []byte
}

func (*PublicKey_Ed25519) isPublicKey_Pub() {}

func (m *PublicKey) GetPub() isPublicKey_Pub {
	if m != nil {
		return m.Pub
	}
	return nil
}

func (m *PublicKey) GetEd25519() []byte {
	if x, ok := m.GetPub().(*PublicKey_Ed25519); ok {
		return x.Ed25519
	}
	return nil
}

func (m *PublicKey) Marshal() ([]byte, error) {
	return marshalRawField(m.GetEd25519())
}

func (m *PublicKey) Unmarshal(data []byte) error {
	raw, err := unmarshalRawField(data)
	if err != nil {
		return err
	}
	if raw == nil {
		m.Pub = nil
	} else {
		m.Pub = &PublicKey_Ed25519{Ed25519: raw}
	}
	return nil
}

type PrivateKey struct {
	// Types that are valid to be assigned to Priv:
	//	*PrivateKey_Ed25519
	Priv isPrivateKey_Priv
}

type isPrivateKey_Priv interface {
	isPrivateKey_Priv()
}

type PrivateKey_Ed25519 struct {
	Ed25519 []byte
}

func (*PrivateKey_Ed25519) isPrivateKey_Priv() {}

func (m *PrivateKey) GetPriv() isPrivateKey_Priv {
	if m != nil {
		return m.Priv
	}
	return nil
}

func (m *PrivateKey) GetEd25519() []byte {
	if x, ok := m.GetPriv().(*PrivateKey_Ed25519); ok {
		return x.Ed25519
	}
	return nil
}

func (m *PrivateKey) Marshal() ([]byte, error) {
	return marshalRawField(m.GetEd25519())
}

func (m *PrivateKey) Unmarshal(data []byte) error {
	raw, err := unmarshalRawField(data)
	if err != nil {
		return err
	}
	if raw == nil {
		m.Priv = nil
	} else {
		m.Priv = &PrivateKey_Ed25519{Ed25519: raw}
	}
	return nil
}

type Signature struct {
	// Types that are valid to be assigned to Sig:
	//	*Signature_Ed25519
	Sig isSignature_Sig
}

type isSignature_Sig interface {
	isSignature_Sig()
}

type Signature_Ed25519 struct {
	Ed25519 []byte
}

func (*Signature_Ed25519) isSignature_Sig() {}

func (m *Signature) GetSig() isSignature_Sig {
	if m != nil {
		return m.Sig
	}
	return nil
}

func (m *Signature) GetEd25519() []byte {
	if x, ok := m.GetSig().(*Signature_Ed25519); ok {
		return x.Ed25519
	}
	return nil
}

func (m *Signature) Marshal() ([]byte, error) {
	return marshalRawField(m.GetEd25519())
}

func (m *Signature) Unmarshal(data []byte) error {
	raw, err := unmarshalRawField(data)
	if err != nil {
		return err
	}
	if raw == nil {
		m.Sig = nil
	} else {
		m.Sig = &Signature_Ed25519{Ed25519: raw}
	}
	return nil
}

func marshalRawField(raw []byte) ([]byte, error) {
	if raw == nil {
		return []byte{}, nil
	}
	var scratch [binary.MaxVarintLen64]byte
	out := make([]byte, 0, 2+binary.MaxVarintLen64+len(raw))
	out = append(out, 0xa)
	n := binary.PutUvarint(scratch[:], uint64(len(raw)))
	out = append(out, scratch[:n]...)
	out = append(out, raw...)
	return out, nil
}

func unmarshalRawField(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] != 0xa {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected field header %d", data[0])
	}
	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, errors.Wrap(errors.ErrInput, "invalid length header")
	}
	rest := data[1+n:]
	if uint64(len(rest)) != size {
		return nil, errors.Wrap(errors.ErrInput, "invalid payload length")
	}
	raw := make([]byte, size)
	copy(raw, rest)
	return raw, nil
}
