package iavl

import (
	"sync"

	"github.com/lockboxlabs/swaplock/store"
)

// lazyIterator pulls items out of a running tree walk on demand, so we never
// materialize the whole range.
type lazyIterator struct {
	data    store.Model
	hasMore bool
	read    chan store.Model
	stop    chan struct{}
	once    sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator() *lazyIterator {
	read := make(chan store.Model)
	// ensure we never block when we call Close()
	stop := make(chan struct{}, 1)
	return &lazyIterator{
		read: read,
		stop: stop,
	}
}

// add is the callback passed into the tree walk. It blocks until the consumer
// asks for the next item. Returns true to abort the walk.
func (i *lazyIterator) add(key []byte, value []byte) bool {
	m := store.Model{Key: key, Value: value}
	select {
	case i.read <- m:
		return false
	case <-i.stop:
		return true
	}
}

// fin must be called by the producer once the tree walk has returned.
func (i *lazyIterator) fin() {
	close(i.read)
}

func (i *lazyIterator) Next() {
	i.data, i.hasMore = <-i.read
}

func (i *lazyIterator) Close() {
	i.once.Do(func() {
		i.stop <- struct{}{}
	})
}

func (i *lazyIterator) Valid() bool {
	return i.hasMore
}

func (i *lazyIterator) Key() []byte {
	if !i.hasMore {
		panic("read after end of iterator")
	}
	return i.data.Key
}

func (i *lazyIterator) Value() []byte {
	if !i.hasMore {
		panic("read after end of iterator")
	}
	return i.data.Value
}
