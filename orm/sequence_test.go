package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lockboxlabs/swaplock/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	// Cases share one db on purpose: a sequence addressed a second time
	// must continue counting where it left off.
	cases := []struct {
		bucket, name string
		init         int64
		increments   int64
	}{
		0: {"seq", "one", 0, 22},
		1: {"seq", "two", 0, 11},
		2: {"seq", "one", 22, 18},
		3: {"alt", "one", 0, 77},
		4: {"seq", "two", 11, 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			_, orig := s.Latest(db)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val = s.NextInt(db)
			}
			// the final value is the initial state plus every increment
			assert.Equal(t, tc.init+tc.increments, val)

			// the raw bytes sort after the previous state, so they can
			// serve as index material
			_, last := s.Latest(db)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestSequenceNextVal(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnt", "id")

	first := s.NextVal(db)
	second := s.NextVal(db)
	assert.Equal(t, int64(1), DecodeSequence(first))
	assert.Equal(t, int64(2), DecodeSequence(second))
	assert.Equal(t, 1, bytes.Compare(second, first))

	latest, bz := s.Latest(db)
	assert.Equal(t, int64(2), latest)
	assert.Equal(t, second, bz)
}
