package funds

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/gconf"
)

const optKey = "funds"

// GenesisAccount is used to parse the json from the genesis file. Addresses
// are hex encoded there, not base64.
type GenesisAccount struct {
	Address swaplock.Address `json:"address"`
	Balance uint64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ swaplock.Initializer = Initializer{}

// FromGenesis will parse initial wallets and the package configuration from
// the genesis and save them in the database.
func (Initializer) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, "funds", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet of %q", acct.Address)
		}
		// an empty wallet is never stored
		if acct.Balance == 0 {
			continue
		}
		if err := bucket.Save(db, acct.Address, &Wallet{Balance: acct.Balance}); err != nil {
			return err
		}
	}
	return nil
}
