package iavl

import (
	"bytes"
	"crypto/rand"
	"io/ioutil"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock/store"
)

type Model = store.Model
type Op = store.Op
type Iterator = store.Iterator

// makeBase returns the base layer
//
// If you want to test a different kvstore implementation
// you can copy most of these tests and change makeBase.
// Once that passes, customize and extend as you wish.
func makeBase() (store.CacheableKVStore, func()) {
	commit, cleanup := makeCommitStore()
	return commit.Adapter(), cleanup
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }
	commit := NewCommitStore(tmpDir, "base")
	return commit, cleanup
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	assert.Equal(t, val, kv.Get(key))
	assert.Equal(t, has, kv.Has(key))
}

// TestCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestCacheGetSet(t *testing.T) {
	base, cleanup := makeBase()
	defer cleanup()

	// make sure the tree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	base.Set(k, v)
	assertGetHas(t, base, k, v, true)

	// now layer a cache on top and make sure that we get base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil, false)
	cache.Set(k2, v2)
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	cache.Write()
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assertGetHas(t, c2, k, v, true)
	assertGetHas(t, c2, k2, v2, true)
	c2.Set(k3, v3)
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assertGetHas(t, c3, k, v, true)
	assertGetHas(t, c3, k2, v2, true)
	c3.Delete(k)
	c3.Write()

	// make sure it commits proper
	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)
	assertGetHas(t, base, k3, nil, false)
}

// TestCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestCacheConflicts(t *testing.T) {
	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			[]Op{store.SetOp(ks[1], vs[1]), store.SetOp(ks[2], vs[2])},
			[]Op{store.SetOp(ks[1], vs[11]), store.SetOp(ks[3], vs[7]), store.DelOp(ks[2])},
			[]Model{store.Pair(ks[1], vs[1]), store.Pair(ks[2], vs[2]), store.Pair(ks[3], nil)},
			[]Model{store.Pair(ks[1], vs[11]), store.Pair(ks[2], nil), store.Pair(ks[3], vs[7])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				op.Apply(parent)
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				op.Apply(child)
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				assertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				assertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			// write child to parent and make sure it also shows proper data
			child.Write()
			for _, q := range tc.childQueries {
				assertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// TestCommitOverwrite checks that we commit properly
// and can add/overwrite/query in the next adapter
func TestCommitOverwrite(t *testing.T) {
	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			[]Op{store.SetOp(ks[1], vs[1]), store.SetOp(ks[2], vs[2])},
			[]Op{store.SetOp(ks[1], vs[11]), store.SetOp(ks[3], vs[7]), store.DelOp(ks[2])},
			[]Model{store.Pair(ks[1], vs[1]), store.Pair(ks[2], vs[2]), store.Pair(ks[3], nil)},
			[]Model{store.Pair(ks[1], vs[11]), store.Pair(ks[2], nil), store.Pair(ks[3], vs[7])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			commit, cleanup := makeCommitStore()
			defer cleanup()
			// only one history version to trigger a cleanup
			commit.numHistory = 1

			id := commit.LatestVersion()
			assert.Equal(t, int64(0), id.Version)
			assert.Empty(t, id.Hash)

			parent := commit.CacheWrap()
			for _, op := range tc.parentOps {
				op.Apply(parent)
			}
			// write data to backing store
			parent.Write()
			id = commit.Commit()
			assert.Equal(t, int64(1), id.Version)
			assert.NotEmpty(t, id.Hash)

			// child also comes from commit
			child := commit.CacheWrap()
			for _, op := range tc.childOps {
				op.Apply(child)
			}

			// and a side-cache wrap to see they are in parallel
			side := commit.CacheWrap()

			// now check that side gets unmodified parent state
			for _, q := range tc.parentQueries {
				assertGetHas(t, side, q.Key, q.Value, q.Value != nil)
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				assertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			// write child to parent and make sure it also shows proper data
			child.Write()
			for _, q := range tc.childQueries {
				assertGetHas(t, side, q.Key, q.Value, q.Value != nil)
			}
			id = commit.Commit()
			assert.Equal(t, int64(2), id.Version)
		})
	}
}

// TestCommittedIterator iterates over data that spans the committed tree and
// an uncommitted cache wrap.
func TestCommittedIterator(t *testing.T) {
	const Size = 40
	const DeleteCount = 10

	commit, cleanup := makeCommitStore()
	defer cleanup()

	committed := randModels(Size, 8, 40)
	base := commit.Adapter()
	for _, m := range committed {
		base.Set(m.Key, m.Value)
	}
	commit.Commit()

	fresh := randModels(Size, 8, 40)
	child := base.CacheWrap()
	for _, m := range fresh {
		child.Set(m.Key, m.Value)
	}
	// delete some committed data in the cache only
	for i := 0; i < DeleteCount; i++ {
		child.Delete(committed[i].Key)
	}

	expect := sortModels(append(committed[DeleteCount:], fresh...))

	verifyIterator(t, expect, child.Iterator(nil, nil))
	verifyIterator(t, expect[12:], child.Iterator(expect[12].Key, nil))
	verifyIterator(t, expect[:30], child.Iterator(nil, expect[30].Key))
	verifyIterator(t, expect[15:45], child.Iterator(expect[15].Key, expect[45].Key))

	verifyIterator(t, reverse(expect), child.ReverseIterator(nil, nil))
	verifyIterator(t, reverse(expect[22:]), child.ReverseIterator(expect[22].Key, nil))
	verifyIterator(t, reverse(expect[:17]), child.ReverseIterator(nil, expect[17].Key))
	verifyIterator(t, reverse(expect[9:33]), child.ReverseIterator(expect[9].Key, expect[33].Key))

	// committed data is not affected by the cache
	verifyIterator(t, sortModels(committed), base.Iterator(nil, nil))
}

// TestIteratorClosedEarly abandons an iterator mid-range and makes sure the
// walk shuts down cleanly.
func TestIteratorClosedEarly(t *testing.T) {
	commit, cleanup := makeCommitStore()
	defer cleanup()

	base := commit.Adapter()
	for _, m := range randModels(20, 8, 40) {
		base.Set(m.Key, m.Value)
	}
	commit.Commit()

	iter := base.Iterator(nil, nil)
	require.True(t, iter.Valid())
	iter.Next()
	require.True(t, iter.Valid())
	iter.Close()
	// a second close must not panic
	iter.Close()
}

func verifyIterator(t *testing.T, models []Model, iter Iterator) {
	t.Helper()
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		iter.Next()
	}
	assert.False(t, iter.Valid())
	iter.Close()
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

// sortModels returns a copy of the models sorted by key
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// randKeys returns a slice of count keys, all of a given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(size)
	}
	return res
}

// randModels produces a random set of models
func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := 0; i < count; i++ {
		models[i].Key = randBytes(keySize)
		models[i].Value = randBytes(valueSize)
	}
	return models
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}
