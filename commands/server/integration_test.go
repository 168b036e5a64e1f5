package server_test

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lockboxlabs/swaplock/cmd/swaplockd/app"
	"github.com/lockboxlabs/swaplock/commands/server"
	"github.com/lockboxlabs/swaplock/tmtest"
)

func TestStartStandAlone(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping ABCI stand-alone test")
	}

	home, cleanup := tempHome(t)
	defer cleanup()

	logger := log.NewNopLogger()

	err := server.InitCmd(app.GenInitOptions, logger, home, nil)
	require.NoError(t, err)

	// set up app and start up
	args := []string{"-bind", "localhost:11122"}
	runStart := func() error {
		return server.StartCmd(app.GenerateApp, logger, home, args)
	}
	err = runOrTimeout(runStart, 2*time.Second)
	require.NoError(t, err)
}

func runOrTimeout(cmd func() error, timeout time.Duration) error {
	done := make(chan error)
	go func(out chan<- error) {
		// we assume cmd should block (RunForever)
		err := cmd()
		if err != nil {
			out <- err
		}
		out <- errors.New("start died for unknown reasons")
	}(done)

	timer := time.NewTimer(timeout)
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return nil
	}
}

func TestStartWithTendermint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Tendermint integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()

	home, cleanup := tempHome(t)
	defer cleanup()

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "test-cmd")
	if err := server.InitCmd(app.GenInitOptions, logger, home, nil); err != nil {
		t.Fatalf("cannot initialize application: %s", err)
	}

	defer tmtest.RunTendermint(ctx, t, home)()

	done := make(chan error, 1)
	go func() {
		// The default tendermint configuration dials this address.
		args := []string{"-bind", "tcp://localhost:26658"}
		done <- server.StartCmd(app.GenerateApp, logger, home, args)
	}()

	select {
	case <-ctx.Done():
		t.Logf("context cancelled before application finished")
	case err := <-done:
		if err != nil {
			t.Fatalf("application failed: %s", err)
		}
	}
}

func tempHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "swaplockd-int")
	if err != nil {
		t.Fatalf("cannot create home directory: %s", err)
	}
	return home, func() { os.RemoveAll(home) }
}
