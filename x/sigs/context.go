package sigs

import (
	"context"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx swaplock.Context, signers []swaplock.Condition) swaplock.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate implements x.Authenticator and reveals the conditions the
// decorator verified on the transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current transaction. May be empty.
func (a Authenticate) GetConditions(ctx swaplock.Context) []swaplock.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]swaplock.Condition)
	return val
}

// HasAddress returns true iff this address signed.
func (a Authenticate) HasAddress(ctx swaplock.Context, addr swaplock.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
