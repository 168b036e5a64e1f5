package app

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder swaplock.TxDecoder
	handler swaplock.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application.
func NewBaseApp(
	store *StoreApp,
	decoder swaplock.TxDecoder,
	handler swaplock.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return swaplock.DeliverTxError(err, b.debug)
	}

	ctx := swaplock.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", swaplock.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err == nil {
		b.AddValChange(res.Diff)
	}
	return swaplock.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return swaplock.CheckTxError(err, b.debug)
	}

	ctx := swaplock.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", swaplock.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return swaplock.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder and captures any panic it raises.
func (b BaseApp) loadTx(txBytes []byte) (tx swaplock.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
