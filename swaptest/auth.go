package swaptest

import (
	"context"
	"fmt"

	"github.com/lockboxlabs/swaplock"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can use
// either Signer or Signers (or both) attributes to reference conditions. Each
// time all signers (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when a single signer is enough.
	// When authenticating all signers declared on this structure are
	// considered.
	Signer swaplock.Condition

	// Signers represents an authentication of multiple signers.
	Signers []swaplock.Condition
}

func (a *Auth) GetConditions(swaplock.Context) []swaplock.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx swaplock.Context, addr swaplock.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx swaplock.Context, permissions ...swaplock.Condition) swaplock.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx swaplock.Context) []swaplock.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]swaplock.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []swaplock.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx swaplock.Context, addr swaplock.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
