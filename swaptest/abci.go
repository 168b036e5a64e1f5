package swaptest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/app"
	"github.com/lockboxlabs/swaplock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B. Use it instead of
// the pointer type to allow notation to accept both objects.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// AppRunner provides a translation layer between the ABCI interface and a
// swaplock application. It takes care of serializing transactions and
// creating blocks.
type AppRunner struct {
	chainID string
	height  int64
	t       Tester
	app     abci.Application

	// reads are answered over the abci query interface, against the last
	// committed state
	*app.ABCIStore
}

// NewAppRunner creates an AppRunner instance that can be used to process
// deliver and check transaction requests using the native API. This runner
// expects all operations to succeed. Any error results in test failure.
func NewAppRunner(t Tester, application abci.Application, chainID string) *AppRunner {
	return &AppRunner{
		chainID:   chainID,
		height:    0,
		t:         t,
		app:       application,
		ABCIStore: app.NewABCIStore(application),
	}
}

// App is implemented by a swaplock application. This is the minimal interface
// required by the AppRunner to connect the ABCI and native APIs together.
type App interface {
	DeliverTx(swaplock.Tx) error
	CheckTx(swaplock.Tx) error
	// standard queries are allowed as well, wrap into a bucket for ease
	// of use
	swaplock.ReadOnlyKVStore
}

var _ App = (*AppRunner)(nil)

// InitChain serializes the given genesis to JSON and loads it. Loading a
// genesis is causing a block creation.
func (w *AppRunner) InitChain(genesis interface{}) {
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		w.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	// Load the genesis in a separate block.
	changed := w.InBlock(func(App) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: raw,
		})
		return nil
	})

	if !changed {
		w.t.Fatalf("genesis did not change the state")
	}
}

// CheckTx translates the given transaction into the ABCI interface and
// executes it. A non zero response code is converted back into an error
// that can be tested against the registered error kinds.
func (w *AppRunner) CheckTx(tx swaplock.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := w.app.CheckTx(raw); resp.Code != errors.SuccessABCICode {
		return errors.ABCIError(resp.Code, resp.Log)
	}
	return nil
}

// DeliverTx translates the given transaction into the ABCI interface and
// executes it. A non zero response code is converted back into an error
// that can be tested against the registered error kinds.
func (w *AppRunner) DeliverTx(tx swaplock.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := w.app.DeliverTx(raw); resp.Code != errors.SuccessABCICode {
		return errors.ABCIError(resp.Code, resp.Log)
	}
	return nil
}

// InBlock begins a block and runs the given function. All transactions
// executed within the given function are part of the newly created block.
// Upon success the block is finished and the changes committed.
// InBlock returns true if the application state was modified by the block.
//
// Any failure is ending the test instantly.
func (w *AppRunner) InBlock(executeTx func(App) error) bool {
	w.t.Helper()

	w.height++

	initialHash := w.app.Info(abci.RequestInfo{}).LastBlockAppHash

	// BeginBlock will panic on error.
	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: w.chainID,
			Height:  w.height,
			Time:    time.Now(),
		},
	})

	if err := executeTx(w); err != nil {
		w.t.Fatalf("operation failed with %+v", err)
	}

	w.app.EndBlock(abci.RequestEndBlock{
		Height: w.height,
	})

	// Commit data contains the new app hash. It differs from the initial
	// hash only if the state was modified.
	finalHash := w.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}
