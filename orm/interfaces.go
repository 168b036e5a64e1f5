package orm

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/x"
)

// Object is what is stored in the bucket. Key is joined with the bucket
// prefix to form the full db key. Value is the data stored.
//
// This can be a light wrapper around a protobuf-defined type.
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid state to save
	// to the db (field missing, out of range, ...)
	x.Validater
	Value() swaplock.Persistent
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db swaplock.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is an intelligent Value that can be embedded in a simple
// object to handle much of the details.
type CloneableData interface {
	x.Validater
	swaplock.Persistent
	Copy() CloneableData
}
