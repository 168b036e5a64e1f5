package sigs

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/orm"
	"github.com/lockboxlabs/swaplock/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r swaplock.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequence, &bumpSequenceHandler{
		auth: auth,
		b:    NewBucket(),
	})
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: bumpSequenceCost}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	obj, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Processing the transaction already bumped the sequence by one. The
	// increment represents the total distance the sequence must travel.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		return &swaplock.DeliverResult{}, nil
	}
	user := AsUser(obj)
	user.Sequence += incr
	if err := h.b.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return &swaplock.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (orm.Object, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := swaplock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	obj, err := h.b.Get(db, signer.Address())
	if err != nil {
		return nil, nil, errors.Wrap(err, "bucket")
	}
	if obj == nil {
		return nil, nil, errors.Wrap(errors.ErrNotFound, "no sequence")
	}

	user := AsUser(obj)
	if user.Sequence+int64(msg.Increment) < user.Sequence {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return obj, &msg, nil
}
