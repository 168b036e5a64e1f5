package vault

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x"
	"github.com/lockboxlabs/swaplock/x/token"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r swaplock.Registry, auth x.Authenticator, custody token.Controller) {
	r.Handle(pathDeposit, NewDepositHandler(auth, custody))
	r.Handle(pathWithdraw, NewWithdrawHandler(auth, custody))
}

type depositHandler struct {
	auth    x.Authenticator
	custody token.Controller
}

var _ swaplock.Handler = (*depositHandler)(nil)

// NewDepositHandler creates a handler that locks part of the sender's
// holding in the sender's vault, provisioning the vault on first use at
// the sender's expense.
func NewDepositHandler(auth x.Authenticator, custody token.Controller) swaplock.Handler {
	return &depositHandler{
		auth:    auth,
		custody: custody,
	}
}

func (h *depositHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: depositCost}, nil
}

func (h *depositHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	owner, err := token.SignerAuthority(ctx, h.auth, msg.Owner)
	if err != nil {
		return nil, err
	}
	vaultAddr := VaultAddress(msg.Owner, msg.Asset)
	if _, _, err := h.custody.EnsureHolding(db, vaultAddr, msg.Asset, owner); err != nil {
		return nil, err
	}
	if err := h.custody.Move(db, owner, msg.Asset, vaultAddr, msg.Amount); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{Data: vaultAddr}, nil
}

func (h *depositHandler) validate(ctx swaplock.Context, tx swaplock.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

type withdrawHandler struct {
	auth    x.Authenticator
	custody token.Controller
}

var _ swaplock.Handler = (*withdrawHandler)(nil)

// NewWithdrawHandler creates a handler that empties the sender's vault in
// one go and closes it, returning the storage deposit to the sender.
func NewWithdrawHandler(auth x.Authenticator, custody token.Controller) swaplock.Handler {
	return &withdrawHandler{
		auth:    auth,
		custody: custody,
	}
}

func (h *withdrawHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *withdrawHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	owner, err := token.SignerAuthority(ctx, h.auth, msg.Owner)
	if err != nil {
		return nil, err
	}
	vaultAddr := VaultAddress(msg.Owner, msg.Asset)
	balance, err := h.custody.Balance(db, vaultAddr, msg.Asset)
	if err != nil {
		return nil, err
	}
	if balance == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "vault is empty")
	}
	// A missing destination holding is provisioned at the owner's expense.
	if _, _, err := h.custody.EnsureHolding(db, msg.Owner, msg.Asset, owner); err != nil {
		return nil, err
	}
	vault := token.DerivedAuthority(VaultCondition(msg.Owner, msg.Asset))
	if err := h.custody.Move(db, vault, msg.Asset, msg.Owner, balance); err != nil {
		return nil, err
	}
	if err := h.custody.CloseHolding(db, vaultAddr, msg.Asset, msg.Owner); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{}, nil
}

func (h *withdrawHandler) validate(ctx swaplock.Context, tx swaplock.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}
