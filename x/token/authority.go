package token

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x"
)

// Authority is the capability to spend from the holdings of one owner.
// It cannot be forged from a plain address. Handlers obtain one either by
// proving a signature with SignerAuthority, or by deriving one for a
// condition their own extension controls with DerivedAuthority.
type Authority struct {
	addr swaplock.Address
}

// Address returns the owner identity this authority speaks for.
func (a Authority) Address() swaplock.Address {
	return a.addr
}

// SignerAuthority returns the authority over the given address, provided
// that address signed the current transaction.
func SignerAuthority(ctx swaplock.Context, auth x.Authenticator, addr swaplock.Address) (Authority, error) {
	if !auth.HasAddress(ctx, addr) {
		return Authority{}, errors.Wrapf(errors.ErrUnauthorized, "no signature by %s", addr)
	}
	return Authority{addr: addr}, nil
}

// DerivedAuthority returns the authority over the address of the given
// condition. This is how an extension spends from accounts only its own
// derivations control. No signature is involved, so the caller must be the
// extension that owns the condition.
func DerivedAuthority(cond swaplock.Condition) Authority {
	return Authority{addr: cond.Address()}
}
