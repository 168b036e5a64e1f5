package escrow

import (
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/gconf"
)

func (c *Configuration) Validate() error {
	// Any rent, including zero, is a legal configuration.
	return nil
}

func mustLoadConf(db gconf.ReadStore) Configuration {
	var conf Configuration
	if err := gconf.Load(db, "escrow", &conf); err != nil {
		err = errors.Wrap(err, "load configuration")
		panic(err)
	}
	return conf
}
