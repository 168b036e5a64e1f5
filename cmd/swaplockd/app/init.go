package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/app"
	"github.com/lockboxlabs/swaplock/commands/server"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/x/escrow"
	"github.com/lockboxlabs/swaplock/x/funds"
	"github.com/lockboxlabs/swaplock/x/token"
)

// GenInitOptions will produce some basic options for one rich account, to
// use for dev mode.
//
// The first argument is the ticker of the asset class to register, the
// second the hex address of the account to fund. A fresh key is generated
// and printed when no address is given.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "GOLD"
	if len(args) > 0 {
		ticker = args[0]
	}

	var addr swaplock.Address
	if len(args) > 1 {
		if err := addr.UnmarshalJSON([]byte(`"` + args[1] + `"`)); err != nil {
			return nil, errors.Wrap(err, "address")
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the secret to access it
		bz, secret, err := server.GenerateKey()
		if err != nil {
			return nil, err
		}
		addr = bz
		fmt.Printf("private key: %s\n", secret)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"funds": array{
			dict{
				"address": addr,
				"balance": 123456789,
			},
		},
		"token": dict{
			"assets": array{
				dict{"ticker": ticker, "issuer": addr},
			},
			"holdings": array{
				dict{"owner": addr, "ticker": ticker, "amount": 1000000},
			},
		},
		"conf": dict{
			"funds": funds.Configuration{
				CollectorAddress: feeCollector(),
				MinimalFee:       0, // no fee
			},
			"token": token.Configuration{
				HoldingRent: 2,
			},
			"escrow": escrow.Configuration{
				RecordRent: 5,
			},
		},
	})
}

// feeCollector is the address credited with transaction fees until a
// deployment configures its own.
func feeCollector() swaplock.Address {
	return swaplock.NewCondition("gov", "fees", []byte("collector")).Address()
}

// GenerateApp is used to create a stub for server/start.go command.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "abci.db")
	}

	stack := Stack()
	application, err := Application("swaplock", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}

	// set the logger and return
	return DecorateApp(application, logger), nil
}

// Initializers returns the chain of genesis initializers of the
// application. The same chain serves InitChain and offline genesis
// validation.
func Initializers() swaplock.Initializer {
	return app.ChainInitializers(
		funds.Initializer{},
		&token.Initializer{Minter: FundsControl()},
		escrow.Initializer{},
	)
}

// DecorateApp adds initializers and Logger to an Application.
func DecorateApp(application app.BaseApp, logger log.Logger) app.BaseApp {
	application.WithInit(Initializers())
	application.WithLogger(logger)
	return application
}

// InlineApp will take a previously prepared CommitStore and return a complete
// application. The server retry command uses it to rerun one block over a
// rolled back state.
func InlineApp(kv swaplock.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	stack := Stack()
	ctx := context.Background()
	store := app.NewStoreApp("swaplock", kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, TxDecoder, stack, debug)
	return DecorateApp(base, logger)
}
