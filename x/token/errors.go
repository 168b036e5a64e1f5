package token

import (
	"github.com/lockboxlabs/swaplock/errors"
)

// Error codes
// x/token reserves 1100 ~ 1109.

var (
	ErrHoldingMismatch = errors.Register(1100, "holding does not match its identity")
)
