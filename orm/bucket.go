/*
Package orm provides a thin object layer over the key-value store.

State is broken into prefixed sections called buckets. Each bucket holds
objects of only one type, addressed by a primary key, and may maintain any
number of secondary indexes as well as named sequences. Buckets and their
indexes plug into the query router, so every piece of state is reachable
through ABCI queries without extra wiring.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// SeqID is the name of the default ID sequence of a bucket.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well as references to
// secondary indexes and sequences.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
	// indexes are kept in registration order so that writes touch the db
	// in a deterministic sequence
	indexes []bucketIndex
}

// bucketIndex pairs an index with the short name it was registered under.
type bucketIndex struct {
	alias string
	index Index
}

var _ swaplock.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data under the given name. The name
// must be short lowercase, it becomes part of every db key.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this bucket and all its indexes with the query router.
// You can provide a custom name, or "" to use the bucket name.
func (b Bucket) Register(name string, r swaplock.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for _, i := range b.indexes {
		r.Register(root+"/"+i.alias, i.index)
	}
}

// Query handles exact match and prefix queries over the bucket space.
func (b Bucket) Query(db swaplock.ReadOnlyKVStore, mod string, data []byte) ([]swaplock.Model, error) {
	switch mod {
	case swaplock.KeyQueryMod:
		key := b.DBKey(data)
		value := db.Get(key)
		if value == nil {
			return nil, nil
		}
		return []swaplock.Model{{Key: key, Value: value}}, nil
	case swaplock.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier: %s", mod)
	}
}

// DBKey is the full key we store in the db, including the bucket prefix.
// The result is always freshly allocated, so the caller may retain it.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// Get one element from the bucket, or nil if there is no match.
func (b Bucket) Get(db swaplock.ReadOnlyKVStore, key []byte) (Object, error) {
	bz := db.Get(b.DBKey(key))
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and a stored value and reconstructs the object this
// bucket would return. Used internally by Get, exposed mainly as a test
// helper.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot parse stored value: %v", err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save writes the object to the bucket, refusing invalid data and updating
// all registered indexes.
func (b Bucket) Save(db swaplock.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}
	db.Set(b.DBKey(model.Key()), bz)
	return nil
}

// Delete removes the object with the given key from the bucket and
// de-references it from all indexes.
func (b Bucket) Delete(db swaplock.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	db.Delete(b.DBKey(key))
	return nil
}

func (b Bucket) updateIndexes(db swaplock.KVStore, key []byte, model Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	// we need the previous state of the object to know what moved
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	for _, i := range b.indexes {
		if err := i.index.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns a named sequence, scoped to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of this bucket with the given index registered.
// Panics if an index with that name already exists.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex is like WithIndex, but one object may appear in the
// index under any number of keys.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	for _, i := range b.indexes {
		if i.alias == name {
			panic(fmt.Sprintf("index %s registered twice", name))
		}
	}
	add := NewMultiKeyIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	indexes := make([]bucketIndex, len(b.indexes), len(b.indexes)+1)
	copy(indexes, b.indexes)
	b.indexes = append(indexes, bucketIndex{alias: name, index: add})
	return b
}

// GetIndexed queries the named index for the given index value.
func (b Bucket) GetIndexed(db swaplock.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	for _, i := range b.indexes {
		if i.alias == name {
			refs, err := i.index.GetAt(db, key)
			if err != nil {
				return nil, err
			}
			return b.readRefs(db, refs)
		}
	}
	return nil, errors.Wrapf(ErrInvalidIndex, "%s", name)
}

// GetIndexedLike queries the named index for all objects indexed the same as
// the pattern object.
func (b Bucket) GetIndexedLike(db swaplock.ReadOnlyKVStore, name string, pattern Object) ([]Object, error) {
	for _, i := range b.indexes {
		if i.alias == name {
			refs, err := i.index.GetLike(db, pattern)
			if err != nil {
				return nil, err
			}
			return b.readRefs(db, refs)
		}
	}
	return nil, errors.Wrapf(ErrInvalidIndex, "%s", name)
}

func (b Bucket) readRefs(db swaplock.ReadOnlyKVStore, refs [][]byte) ([]Object, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	objs := make([]Object, len(refs))
	for j, ref := range refs {
		obj, err := b.Get(db, ref)
		if err != nil {
			return nil, err
		}
		objs[j] = obj
	}
	return objs, nil
}
