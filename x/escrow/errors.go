package escrow

import (
	"github.com/lockboxlabs/swaplock/errors"
)

// Error codes
// x/escrow reserves 1000 ~ 1009.

var (
	ErrIdentityMismatch    = errors.Register(1000, "identity does not match the record")
	ErrUnknownInstruction  = errors.Register(1001, "unknown instruction")
	ErrDerivationExhausted = errors.Register(1002, "derivation exhausted")
)
