package token

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r swaplock.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathCreateAsset, NewCreateAssetHandler(auth, control))
	r.Handle(pathMint, NewMintHandler(auth, control))
}

// RegisterQuery will register asset classes as "/tokens" and holdings as
// "/holdings", with the owner index reachable as "/holdings/owner".
func RegisterQuery(qr swaplock.QueryRouter) {
	NewAssetBucket().Register("tokens", qr)
	NewHoldingBucket().Register("holdings", qr)
}

type createAssetHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ swaplock.Handler = (*createAssetHandler)(nil)

// NewCreateAssetHandler creates a handler that registers new asset classes,
// provided the declared issuer signed the transaction.
func NewCreateAssetHandler(auth x.Authenticator, control Controller) swaplock.Handler {
	return &createAssetHandler{
		auth:    auth,
		control: control,
	}
}

func (h *createAssetHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: createAssetCost}, nil
}

func (h *createAssetHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.control.CreateClass(db, msg.Ticker, msg.Issuer); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{}, nil
}

func (h *createAssetHandler) validate(ctx swaplock.Context, tx swaplock.Tx) (*CreateAssetMsg, error) {
	var msg CreateAssetMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	return &msg, nil
}

type mintHandler struct {
	auth    x.Authenticator
	control Controller
	assets  AssetBucket
}

var _ swaplock.Handler = (*mintHandler)(nil)

// NewMintHandler creates a handler that lets the issuer of an asset class
// create new supply. The destination holding is provisioned on the fly, at
// the issuer's expense.
func NewMintHandler(auth x.Authenticator, control Controller) swaplock.Handler {
	return &mintHandler{
		auth:    auth,
		control: control,
		assets:  NewAssetBucket(),
	}
}

func (h *mintHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: mintCost}, nil
}

func (h *mintHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, issuer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, _, err := h.control.EnsureHolding(db, msg.Dest, msg.Asset, issuer); err != nil {
		return nil, err
	}
	if err := h.control.Mint(db, msg.Asset, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{}, nil
}

// validate resolves the issuer of the minted asset and proves the
// transaction carries the issuer's signature.
func (h *mintHandler) validate(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*MintMsg, Authority, error) {
	var msg MintMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, Authority{}, errors.Wrap(err, "load msg")
	}
	class, err := h.assets.Get(db, msg.Asset)
	if err != nil {
		return nil, Authority{}, err
	}
	if class == nil {
		return nil, Authority{}, errors.Wrapf(errors.ErrNotFound, "asset class %s", msg.Asset)
	}
	issuer, err := SignerAuthority(ctx, h.auth, class.Issuer)
	if err != nil {
		return nil, Authority{}, err
	}
	return &msg, issuer, nil
}
