package funds

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r swaplock.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSend, NewSendHandler(auth, control))
}

// RegisterQuery will register wallets as "/wallets".
func RegisterQuery(qr swaplock.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending native units between wallets.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ swaplock.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is properly formed and authorized, and returns
// the cost of executing it.
func (h SendHandler) Check(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	var msg SendMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	res := swaplock.CheckResult{
		GasAllocated: sendTxCost,
	}
	return &res, nil
}

// Deliver moves the units from src to dest if all preconditions are met.
func (h SendHandler) Deliver(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	var msg SendMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	if err := h.control.Move(store, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{}, nil
}
