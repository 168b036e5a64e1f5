package orm

import (
	"bytes"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// Indexer calculates the secondary index key for a given object. An empty
// result means the object is not indexed at all.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates any number of secondary index keys for a given
// object. Empty keys within the result are skipped.
type MultiKeyIndexer func(Object) ([][]byte, error)

// Index maintains a secondary index over the objects of one bucket. Each
// index value either maps to exactly one primary key (unique index) or to a
// sorted reference set.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ swaplock.QueryHandler = Index{}

// NewIndex constructs an index with a single-key Indexer. refKey maps a
// referenced primary key to its full database key and may be nil if the
// index is never queried through the query router.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return NewMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique, refKey)
}

// NewMultiKeyIndex is like NewIndex, but one object may be indexed under any
// number of keys.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     append([]byte("_i."), []byte(name+":")...),
		unique: unique,
		index:  indexer,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		if err != nil {
			return nil, err
		}
		if len(key) == 0 {
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// indexKey is the full db key of one index row.
func (i Index) indexKey(key []byte) []byte {
	out := make([]byte, len(i.id)+len(key))
	copy(out, i.id)
	copy(out[len(i.id):], key)
	return out
}

// Update handles updating the reference to the object in the index.
//
//	prev == nil means insert
//	save == nil means delete
//	both non-nil is a change
func (i Index) Update(db swaplock.KVStore, prev Object, save Object) error {
	type state struct{ a, b bool }
	switch (state{prev == nil, save == nil}) {
	case state{true, true}:
		return errors.Wrap(errors.ErrInput, "update requires at least one object")
	case state{true, false}:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case state{false, true}:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	}
	return i.move(db, prev, save)
}

func (i Index) move(db swaplock.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrapf(errors.ErrImmutable, "cannot rewrite reference from %X to %X", prev.Key(), save.Key())
	}

	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}

	keysToAdd := subtract(newKeys, oldKeys)
	keysToRemove := subtract(oldKeys, newKeys)

	// check the unique constraint before touching any row, so a refused
	// update leaves the index unchanged
	if i.unique {
		for _, key := range keysToAdd {
			if db.Get(i.indexKey(key)) != nil {
				return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
			}
		}
	}

	for _, key := range keysToRemove {
		if err := i.remove(db, key, prev.Key()); err != nil {
			return err
		}
	}
	for _, key := range keysToAdd {
		if err := i.insert(db, key, save.Key()); err != nil {
			return err
		}
	}
	return nil
}

func (i Index) insert(db swaplock.KVStore, index []byte, pk []byte) error {
	// empty index values are not stored
	if len(index) == 0 {
		return nil
	}
	key := i.indexKey(index)
	cur := db.Get(key)

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		db.Set(key, pk)
		return nil
	}

	refs := new(MultiRef)
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	db.Set(key, bz)
	return nil
}

func (i Index) remove(db swaplock.KVStore, index []byte, pk []byte) error {
	if len(index) == 0 {
		return nil
	}
	key := i.indexKey(index)
	cur := db.Get(key)
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s refers to %X", i.name, cur)
		}
		db.Delete(key)
		return nil
	}

	refs := new(MultiRef)
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		db.Delete(key)
		return nil
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	db.Set(key, bz)
	return nil
}

// GetAt returns a list of all primary keys stored under this index value,
// nil if there are none.
func (i Index) GetAt(db swaplock.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	cur := db.Get(i.indexKey(index))
	if cur == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{cur}, nil
	}
	refs := new(MultiRef)
	if err := refs.Unmarshal(cur); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// GetLike calculates the index keys of the given pattern object and returns
// the primary keys stored under any of them.
func (i Index) GetLike(db swaplock.ReadOnlyKVStore, pattern Object) ([][]byte, error) {
	indexes, err := i.index(pattern)
	if err != nil {
		return nil, err
	}
	var pks [][]byte
	for _, index := range indexes {
		at, err := i.GetAt(db, index)
		if err != nil {
			return nil, err
		}
		pks = append(pks, at...)
	}
	return deduplicate(pks), nil
}

// GetPrefix returns the primary keys of all index rows starting with the
// given prefix, ordered by index value.
func (i Index) GetPrefix(db swaplock.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	var pks [][]byte
	for _, m := range queryPrefix(db, i.indexKey(prefix)) {
		if i.unique {
			pks = append(pks, m.Value)
			continue
		}
		refs := new(MultiRef)
		if err := refs.Unmarshal(m.Value); err != nil {
			return nil, err
		}
		pks = append(pks, refs.Refs...)
	}
	return pks, nil
}

// Query processes exact match and prefix lookups against the index and
// resolves the hits into the referenced models.
func (i Index) Query(db swaplock.ReadOnlyKVStore, mod string, data []byte) ([]swaplock.Model, error) {
	switch mod {
	case swaplock.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case swaplock.PrefixQueryMod:
		refs, err := i.GetPrefix(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier: %s", mod)
	}
}

func (i Index) loadRefs(db swaplock.ReadOnlyKVStore, refs [][]byte) ([]swaplock.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]swaplock.Model, len(refs))
	for j, ref := range refs {
		key := ref
		if i.refKey != nil {
			key = i.refKey(ref)
		}
		res[j] = swaplock.Pair(key, db.Get(key))
	}
	return res, nil
}

// deduplicate drops repeated primary keys, keeping the first occurrence and
// the original order.
func deduplicate(pks [][]byte) [][]byte {
	for i := 0; i < len(pks); i++ {
		for j := i + 1; j < len(pks); j++ {
			if bytes.Equal(pks[i], pks[j]) {
				pks = append(pks[:j], pks[j+1:]...)
				j--
			}
		}
	}
	return pks
}

// subtract returns all elements of minuend that are not in subtrahend.
func subtract(minuend [][]byte, subtrahend [][]byte) [][]byte {
	if minuend == nil {
		return nil
	}
	out := make([][]byte, 0, len(minuend))
	for _, m := range minuend {
		drop := false
		for _, s := range subtrahend {
			if bytes.Equal(m, s) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, m)
		}
	}
	return out
}
