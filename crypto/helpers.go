package crypto

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// ExtensionName is the extension part of the conditions built from public
// keys.
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() swaplock.Condition
}

// Signer is the functionality we use from a private key. No serializing, to
// support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// unwrap a PublicKey struct into a PubKey interface.
func (p *PublicKey) unwrap() PubKey {
	pub := p.GetPub()
	if pub == nil {
		return nil
	}
	return pub.(PubKey)
}

// unwrap a PrivateKey struct into a Signer interface.
func (p *PrivateKey) unwrap() Signer {
	priv := p.GetPriv()
	if priv == nil {
		return nil
	}
	return priv.(Signer)
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public
// key. An empty public key verifies nothing.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	in := p.unwrap()
	if in == nil {
		return false
	}
	return in.Verify(message, sig)
}

// Condition builds the authorization condition this public key satisfies.
// Returns nil for an empty key.
func (p *PublicKey) Condition() swaplock.Condition {
	in := p.unwrap()
	if in == nil {
		return nil
	}
	return in.Condition()
}

// Address is a shortcut for Condition().Address().
func (p *PublicKey) Address() swaplock.Address {
	return p.Condition().Address()
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	in := p.unwrap()
	if in == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "private key")
	}
	return in.Sign(message)
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	in := p.unwrap()
	if in == nil {
		return &PublicKey{}
	}
	return in.PublicKey()
}
