package client

import (
	"context"
	"fmt"
	"time"

	"github.com/tendermint/tendermint/abci/types"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
)

// Runner is the part of testing.M that the helper needs, declared as an
// interface so wrappers can be used as well
type Runner interface {
	Run() int
}

// TestWithTendermint starts an in-process tendermint node running the given
// abci application, waits until the first block is produced and then runs the
// test suite. The callback receives the node, so the tests can connect to it.
func TestWithTendermint(app types.Application, cb func(*nm.Node), m Runner) int {
	config := rpctest.GetConfig()
	// Index every tag, so transaction search works out of the box. A
	// non-empty IndexTags list would override IndexAllTags.
	config.TxIndex.IndexTags = ""
	config.TxIndex.IndexAllTags = true

	n := rpctest.StartTendermint(app)
	cb(n)

	fmt.Println("Wait for first block...")
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	_, err := NewLocalClient(n).WaitForNextBlock(ctx)

	// Run tests only if tendermint started properly
	var code int
	if err == nil {
		code = m.Run()
	} else {
		fmt.Printf("Failed to start tendermint: %s\n", err)
		code = 1
	}

	// and shut down proper at the end
	_ = n.Stop()
	n.Wait()
	return code
}
