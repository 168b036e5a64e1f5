package funds

import (
	"github.com/lockboxlabs/swaplock/errors"
)

// Error codes
// x/funds reserves 1200 ~ 1209.

var (
	ErrInsufficientFunds = errors.Register(1200, "insufficient funds")
)
