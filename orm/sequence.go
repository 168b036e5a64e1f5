package orm

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
)

// Sequence maintains a strictly increasing counter in the db. Each call to
// NextVal or NextInt advances it by one.
type Sequence struct {
	id []byte
}

// NewSequence returns a named sequence, scoped to the given bucket.
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db swaplock.KVStore) []byte {
	_, bz := s.increment(db)
	return bz
}

// NextInt increments the sequence and returns its state as an int64.
func (s Sequence) NextInt(db swaplock.KVStore) int64 {
	val, _ := s.increment(db)
	return val
}

// Latest returns the last value handed out without modifying the sequence.
// Both results are zero values if the sequence was never used.
func (s Sequence) Latest(db swaplock.ReadOnlyKVStore) (int64, []byte) {
	return s.curVal(db)
}

func (s Sequence) curVal(db swaplock.ReadOnlyKVStore) (int64, []byte) {
	bz := db.Get(s.id)
	if bz == nil {
		return 0, nil
	}
	return DecodeSequence(bz), bz
}

func (s Sequence) increment(db swaplock.KVStore) (int64, []byte) {
	val, _ := s.curVal(db)
	val++
	bz := EncodeSequence(val)
	db.Set(s.id, bz)
	return val, bz
}

// DecodeSequence converts the 8 byte big-endian state into an int64.
func DecodeSequence(bz []byte) int64 {
	return int64(binary.BigEndian.Uint64(bz))
}

// EncodeSequence converts an int64 into the 8 byte big-endian state. The
// encoding sorts in the same order as the numbers, so it can double as an
// index key.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
