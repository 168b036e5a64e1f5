package orm

import (
	"github.com/lockboxlabs/swaplock/errors"
)

// The orm package reserves the error code range 100~109.
var (
	// ErrInvalidIndex is returned when a lookup names an index that was
	// never registered on the bucket.
	ErrInvalidIndex = errors.Register(100, "invalid index")
)
