package swaptest

import "github.com/lockboxlabs/swaplock"

// Decorator is a mock implementation of the swaplock.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the corresponding
// method. If the error attributes are not set then the wrapped handler method
// is called and its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ swaplock.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx, next swaplock.Checker) (*swaplock.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx, next swaplock.Deliverer) (*swaplock.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps a single handler with a single decorator and returns the
// result as a new handler.
func Decorate(h swaplock.Handler, d swaplock.Decorator) swaplock.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn swaplock.Handler
	dc swaplock.Decorator
}

var _ swaplock.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
