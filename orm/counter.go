package orm

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock/errors"
)

// Counter is a simple wrapper around an int64 that can be stored in a
// bucket. It serves as the reference model in tests and as a typed view for
// anything that wants to persist one number.
type Counter struct {
	Count int64
}

var _ CloneableData = (*Counter)(nil)

// NewCounter returns an initialized counter.
func NewCounter(count int64) *Counter {
	return &Counter{Count: count}
}

// Validate rejects negative counts.
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrapf(errors.ErrState, "count cannot be negative: %d", c.Count)
	}
	return nil
}

// Copy produces a detached copy of the counter.
func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// Marshal writes the count as a varint field 1, the same bytes a protobuf
// compiler would produce.
func (c *Counter) Marshal() ([]byte, error) {
	if c.Count == 0 {
		return []byte{}, nil
	}
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], uint64(c.Count))
	out := make([]byte, 0, 1+n)
	out = append(out, 0x8)
	return append(out, scratch[:n]...), nil
}

// Unmarshal parses the wire format written by Marshal.
func (c *Counter) Unmarshal(data []byte) error {
	c.Count = 0
	for len(data) > 0 {
		if data[0] != 0x8 {
			return errors.Wrapf(errors.ErrInput, "unexpected field header %d", data[0])
		}
		val, n := binary.Uvarint(data[1:])
		if n <= 0 {
			return errors.Wrap(errors.ErrInput, "invalid count")
		}
		c.Count = int64(val)
		data = data[1+n:]
	}
	return nil
}
