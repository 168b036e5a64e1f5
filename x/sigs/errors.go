package sigs

import (
	"github.com/lockboxlabs/swaplock/errors"
)

// Error codes
// x/sigs reserves 1400 ~ 1409.

var (
	ErrInvalidSequence = errors.Register(1400, "invalid sequence")
)
