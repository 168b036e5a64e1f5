package app

import (
	"github.com/lockboxlabs/swaplock"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...swaplock.Initializer) swaplock.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []swaplock.Initializer
}

// FromGenesis will pass opts to all initializers in the list, aborting at the
// first error.
func (c chainInitializer) FromGenesis(opts swaplock.Options, kv swaplock.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
