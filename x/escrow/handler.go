package escrow

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x"
	"github.com/lockboxlabs/swaplock/x/token"
)

// RentCollector is the slice of the funds controller this extension needs
// to charge and return the record deposits.
type RentCollector interface {
	ChargeRent(db swaplock.KVStore, payer swaplock.Address, amount uint64) error
	RefundRent(db swaplock.KVStore, recipient swaplock.Address, amount uint64) error
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r swaplock.Registry, auth x.Authenticator, custody token.Controller, rent RentCollector) {
	bucket := NewBucket()
	r.Handle(pathMake, MakeHandler{auth, bucket, custody, rent})
	r.Handle(pathTake, TakeHandler{auth, bucket, custody, rent})
	r.Handle(pathRefund, RefundHandler{auth, bucket, custody, rent})
}

// RegisterQuery will register escrow records as "/escrows", with the maker
// index reachable as "/escrows/maker".
func RegisterQuery(qr swaplock.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// MakeHandler opens a deal. It charges the maker the record deposit, saves
// the record under the derived address and locks the offer in custody.
type MakeHandler struct {
	auth    x.Authenticator
	bucket  Bucket
	custody token.Controller
	rent    RentCollector
}

var _ swaplock.Handler = MakeHandler{}

func (h MakeHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: makeCost}, nil
}

func (h MakeHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	maker, err := token.SignerAuthority(ctx, h.auth, msg.Maker)
	if err != nil {
		return nil, err
	}
	conf := mustLoadConf(db)
	if err := h.rent.ChargeRent(db, msg.Maker, conf.RecordRent); err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, esc); err != nil {
		return nil, err
	}
	escrowAddr := DeriveWithProof(esc.Maker, esc.DealNonce, esc.Proof)
	if _, _, err := h.custody.EnsureHolding(db, escrowAddr, msg.AssetA, maker); err != nil {
		return nil, err
	}
	if err := h.custody.Move(db, maker, msg.AssetA, escrowAddr, msg.OfferAmount); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{Data: escrowAddr}, nil
}

// validate derives the escrow address and builds the record this deal will
// persist. The deal must be signed by the maker and the address must still
// be free.
func (h MakeHandler) validate(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*MakeMsg, *Escrow, error) {
	var msg MakeMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	escrowAddr, proof, err := Derive(msg.Maker, msg.DealNonce)
	if err != nil {
		return nil, nil, err
	}
	switch existing, err := h.bucket.Get(db, escrowAddr); {
	case err != nil:
		return nil, nil, err
	case existing != nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "deal nonce %d", msg.DealNonce)
	}
	esc := &Escrow{
		Maker:     msg.Maker,
		AssetA:    msg.AssetA,
		AssetB:    msg.AssetB,
		DealNonce: msg.DealNonce,
		AskAmount: msg.AskAmount,
		Proof:     proof,
	}
	return &msg, esc, nil
}

// TakeHandler settles a deal. The taker pays the ask to the maker and
// receives the full custody balance. The record is erased and both the
// custody deposit and the record deposit return to the maker.
type TakeHandler struct {
	auth    x.Authenticator
	bucket  Bucket
	custody token.Controller
	rent    RentCollector
}

var _ swaplock.Handler = TakeHandler{}

func (h TakeHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: takeCost}, nil
}

func (h TakeHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	taker, err := token.SignerAuthority(ctx, h.auth, msg.Taker)
	if err != nil {
		return nil, err
	}
	conf := mustLoadConf(db)
	offer, err := h.custody.Balance(db, msg.EscrowAddress, msg.AssetA)
	if err != nil {
		return nil, err
	}
	// Any destination holding missing on the take path is provisioned at
	// the taker's expense.
	if _, _, err := h.custody.EnsureHolding(db, msg.Taker, msg.AssetA, taker); err != nil {
		return nil, err
	}
	if _, _, err := h.custody.EnsureHolding(db, esc.Maker, msg.AssetB, taker); err != nil {
		return nil, err
	}
	if err := h.custody.Move(db, taker, msg.AssetB, esc.Maker, esc.AskAmount); err != nil {
		return nil, err
	}
	escrow := token.DerivedAuthority(SeedCondition(esc.Maker, esc.DealNonce, esc.Proof))
	if err := h.custody.Move(db, escrow, msg.AssetA, msg.Taker, offer); err != nil {
		return nil, err
	}
	if err := h.custody.CloseHolding(db, msg.EscrowAddress, msg.AssetA, esc.Maker); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.EscrowAddress); err != nil {
		return nil, err
	}
	if err := h.rent.RefundRent(db, esc.Maker, conf.RecordRent); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{}, nil
}

// validate loads the record and proves every identity the instruction
// claims: the maker against the record, the escrow address against the
// recomputed derivation and both assets against the stored pair.
func (h TakeHandler) validate(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*TakeMsg, *Escrow, error) {
	var msg TakeMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	esc, err := h.bucket.Get(db, msg.EscrowAddress)
	if err != nil {
		return nil, nil, err
	}
	if esc == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", msg.EscrowAddress)
	}
	if !esc.Maker.Equals(msg.Maker) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "maker")
	}
	if !DeriveWithProof(msg.Maker, esc.DealNonce, esc.Proof).Equals(msg.EscrowAddress) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "escrow address")
	}
	if !esc.AssetA.Equals(msg.AssetA) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "asset a")
	}
	if !esc.AssetB.Equals(msg.AssetB) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "asset b")
	}
	return &msg, esc, nil
}

// RefundHandler cancels a deal. Only the maker stored in the record can do
// this. The custody balance, the custody deposit and the record deposit
// all return to the maker.
type RefundHandler struct {
	auth    x.Authenticator
	bucket  Bucket
	custody token.Controller
	rent    RentCollector
}

var _ swaplock.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: refundCost}, nil
}

func (h RefundHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	maker, err := token.SignerAuthority(ctx, h.auth, esc.Maker)
	if err != nil {
		return nil, err
	}
	conf := mustLoadConf(db)
	offer, err := h.custody.Balance(db, msg.EscrowAddress, msg.AssetA)
	if err != nil {
		return nil, err
	}
	// On the refund path the maker pays for a missing destination holding
	// while the take path bills the taker.
	if _, _, err := h.custody.EnsureHolding(db, esc.Maker, msg.AssetA, maker); err != nil {
		return nil, err
	}
	escrow := token.DerivedAuthority(SeedCondition(esc.Maker, esc.DealNonce, esc.Proof))
	if err := h.custody.Move(db, escrow, msg.AssetA, esc.Maker, offer); err != nil {
		return nil, err
	}
	if err := h.custody.CloseHolding(db, msg.EscrowAddress, msg.AssetA, esc.Maker); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.EscrowAddress); err != nil {
		return nil, err
	}
	if err := h.rent.RefundRent(db, esc.Maker, conf.RecordRent); err != nil {
		return nil, err
	}
	return &swaplock.DeliverResult{}, nil
}

// validate loads the record and authorizes the call against the maker
// stored in it, not the maker the instruction claims. The claimed maker,
// the escrow address and the offered asset are then proven against the
// record.
func (h RefundHandler) validate(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	esc, err := h.bucket.Get(db, msg.EscrowAddress)
	if err != nil {
		return nil, nil, err
	}
	if esc == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", msg.EscrowAddress)
	}
	if !h.auth.HasAddress(ctx, esc.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	if !esc.Maker.Equals(msg.Maker) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "maker")
	}
	if !DeriveWithProof(msg.Maker, esc.DealNonce, esc.Proof).Equals(msg.EscrowAddress) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "escrow address")
	}
	if !esc.AssetA.Equals(msg.AssetA) {
		return nil, nil, errors.Wrap(ErrIdentityMismatch, "asset a")
	}
	return &msg, esc, nil
}
