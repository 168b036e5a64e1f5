/*
Package app wires together the standard components of the swaplock daemon.

It is a good place to see how the various packages fit: the signature
decorators, the fee collection, the funds and token controllers and the
escrow and vault handlers on top of them. Custom deployments can replace
any single piece without touching the rest.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/app"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/orm"
	"github.com/lockboxlabs/swaplock/store/iavl"
	"github.com/lockboxlabs/swaplock/x"
	"github.com/lockboxlabs/swaplock/x/escrow"
	"github.com/lockboxlabs/swaplock/x/funds"
	"github.com/lockboxlabs/swaplock/x/sigs"
	"github.com/lockboxlabs/swaplock/x/token"
	"github.com/lockboxlabs/swaplock/x/utils"
	"github.com/lockboxlabs/swaplock/x/vault"
)

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// FundsControl returns a controller for the native unit wallets.
func FundsControl() funds.BaseController {
	return funds.NewController(funds.NewBucket())
}

// CustodyControl returns a controller for asset holdings, paying storage
// deposits through the funds controller.
func CustodyControl() token.BaseController {
	return token.NewController(token.NewAssetBucket(), token.NewHoldingBucket(), FundsControl())
}

// Chain returns a chain of decorators, to handle authentication, fees,
// logging, and recovery.
func Chain(authFn x.Authenticator) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewKeyTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		funds.NewFeeDecorator(authFn, FundsControl()),
		// on DeliverTx, bad tx will increment nonce and take fee
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a default router, dispatching to all message handlers of
// the application.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cash := FundsControl()
	custody := CustodyControl()
	funds.RegisterRoutes(r, authFn, cash)
	token.RegisterRoutes(r, authFn, custody)
	escrow.RegisterRoutes(r, authFn, custody, cash)
	vault.RegisterRoutes(r, authFn, custody)
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router, allowing access to "/wallets",
// "/tokens", "/holdings", "/escrows", "/auth" and raw keys under "/".
func QueryRouter() swaplock.QueryRouter {
	r := swaplock.NewQueryRouter()
	r.RegisterAll(
		funds.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain. This can
// be passed into BaseApp.
func Stack() swaplock.Handler {
	authFn := Authenticator()
	return Chain(authFn).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with the given arguments.
// If you are not sure what to use for the Handler, just use Stack().
func Application(name string, h swaplock.Handler,
	tx swaplock.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists the data to the
// named path.
func CommitKVStore(dbPath string) (swaplock.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", path)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
