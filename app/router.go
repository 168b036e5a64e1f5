package app

import (
	"fmt"
	"regexp"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Paths are extension names joined with the message name, eg. "escrow/make".
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router directs each message to the handler registered under the message
// path.
type Router struct {
	handlers map[string]swaplock.Handler
}

var _ swaplock.Registry = (*Router)(nil)
var _ swaplock.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]swaplock.Handler),
	}
}

// Handle registers a handler for the given message path. Requests to that
// path are directed to the given handler.
//
// Path must be unique, registering a path twice panics. This is a programmer
// error, so there is no sense in returning it as a runtime failure.
func (r *Router) Handle(path string, h swaplock.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("path already registered: %q", path))
	}
	r.handlers[path] = h
}

// Handler returns the handler registered for the given path. It never returns
// nil. If no handler was registered for the path, one returning a not found
// error for every call is provided.
func (r *Router) Handler(path string) swaplock.Handler {
	h, ok := r.handlers[path]
	if !ok {
		return &noSuchPathHandler{path: path}
	}
	return h
}

// Check dispatches the transaction to the handler registered under the
// message path.
func (r *Router) Check(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches the transaction to the handler registered under the
// message path.
func (r *Router) Deliver(ctx swaplock.Context, store swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ swaplock.Handler = (*noSuchPathHandler)(nil)

func (h *noSuchPathHandler) Check(swaplock.Context, swaplock.KVStore, swaplock.Tx) (*swaplock.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h *noSuchPathHandler) Deliver(swaplock.Context, swaplock.KVStore, swaplock.Tx) (*swaplock.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
