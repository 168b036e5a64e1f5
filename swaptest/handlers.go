package swaptest

import "github.com/lockboxlabs/swaplock"

// Handler is a mock implementation of the swaplock.Handler interface.
//
// Set CheckResult, DeliverResult or the error attributes to control what each
// method call returns. Every call is counted, regardless of the result.
type Handler struct {
	checkCall   int
	CheckResult swaplock.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult swaplock.DeliverResult
	DeliverErr    error
}

var _ swaplock.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	return &h.CheckResult, nil
}

func (h *Handler) Deliver(ctx swaplock.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	return &h.DeliverResult, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
