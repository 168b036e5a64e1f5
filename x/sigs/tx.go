package sigs

import (
	"github.com/lockboxlabs/swaplock/errors"
)

// SignedTx represents a transaction that carries signatures, which can be
// verified by the sigs.Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction content. The signatures themselves must not be part of
	// the result.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the
	// transaction.
	GetSignatures() []*StdSignature
}

// Validate ensures the StdSignature meets basic standards.
func (s *StdSignature) Validate() error {
	if s.GetSequence() < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
