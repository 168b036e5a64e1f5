/*

FeeDecorator makes sure the processing fee can be deducted from the payer.
All deducted fees are sent to the collector, whose address is configured
via the gconf package.

The minimal fee is configured via gconf as well. A transaction may declare
a higher fee to raise its priority, never a lower one. Whatever is higher,
the declared or the minimal fee, is collected.

It uses auth to verify the payer signed the transaction.

*/

package funds

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x"
)

// FeeDecorator collects the anti-spam fee before running the rest of the
// stack.
type FeeDecorator struct {
	auth x.Authenticator
	ctrl Mover
}

var _ swaplock.Decorator = FeeDecorator{}

// NewFeeDecorator returns a FeeDecorator charging fees through the given
// controller.
func NewFeeDecorator(auth x.Authenticator, ctrl Mover) FeeDecorator {
	return FeeDecorator{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check deducts the fee before calling down the stack.
func (d FeeDecorator) Check(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx, next swaplock.Checker) (*swaplock.CheckResult, error) {
	fee, err := d.charge(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if res.RequiredFee > fee {
		return nil, errors.Wrapf(errors.ErrAmount, "fee less than required fee of %d", res.RequiredFee)
	}
	res.GasPayment += int64(fee)
	return res, nil
}

// Deliver deducts the fee before calling down the stack.
func (d FeeDecorator) Deliver(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx, next swaplock.Deliverer) (*swaplock.DeliverResult, error) {
	fee, err := d.charge(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if res.RequiredFee > fee {
		return nil, errors.Wrapf(errors.ErrAmount, "fee less than required fee of %d", res.RequiredFee)
	}
	return res, nil
}

// charge resolves the fee owed by the transaction, verifies that the payer
// authorized it and moves the fee to the collector. It returns the amount
// charged.
func (d FeeDecorator) charge(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx) (uint64, error) {
	var finfo *FeeInfo
	if ftx, ok := tx.(FeeTx); ok {
		payer := x.MainSigner(ctx, d.auth).Address()
		finfo = ftx.GetFees().DefaultPayer(payer)
	}

	conf := mustLoadConf(store)
	fee := finfo.GetFees()
	if fee < conf.MinimalFee {
		fee = conf.MinimalFee
	}
	// if nothing is owed, just move along
	if fee == 0 {
		return 0, nil
	}

	if err := finfo.Validate(); err != nil {
		return 0, err
	}
	if !d.auth.HasAddress(ctx, finfo.Payer) {
		return 0, errors.Wrap(errors.ErrUnauthorized, "fee payer signature missing")
	}
	if err := d.ctrl.Move(store, finfo.Payer, conf.CollectorAddress, fee); err != nil {
		return 0, err
	}
	return fee, nil
}
