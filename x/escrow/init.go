package escrow

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ swaplock.Initializer = Initializer{}

// FromGenesis will parse the package configuration from the genesis and
// save it in the database. Deals always start empty, they only come into
// existence through a make instruction.
func (Initializer) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, "escrow", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
