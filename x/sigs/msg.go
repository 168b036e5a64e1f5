package sigs

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Ensure we implement the Msg interface
var _ swaplock.Msg = (*BumpSequenceMsg)(nil)

const (
	pathBumpSequence = "sigs/bump_sequence"

	bumpSequenceCost int64 = 100

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

// Path returns the routing path for this message.
func (BumpSequenceMsg) Path() string {
	return pathBumpSequence
}
