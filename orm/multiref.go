package orm

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/lockboxlabs/swaplock/errors"
)

// MultiRef holds a set of references to other objects, stored as sorted,
// de-duplicated primary keys. It is the payload of every non-unique index
// row.
type MultiRef struct {
	Refs [][]byte
}

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef creates a MultiRef with any number of initial references.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// multiRefFromStrings is a test helper to create a MultiRef from strings.
func multiRefFromStrings(strs ...string) (*MultiRef, error) {
	refs := make([][]byte, len(strs))
	for i, s := range strs {
		refs[i] = []byte(s)
	}
	return NewMultiRef(refs...)
}

// Add inserts the reference in the multiref, maintaining sorted order.
// Returns an error if it is already present.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrapf(errors.ErrDuplicate, "reference %X", ref)
	}
	if i == len(m.Refs) {
		m.Refs = append(m.Refs, ref)
		return nil
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove drops the reference from the multiref. Returns an error if it was
// not present.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrapf(errors.ErrNotFound, "reference %X", ref)
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the index where the ref is stored, or where it would be
// inserted if absent.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(ref, m.Refs[i]) <= 0
	})
	if i == len(m.Refs) {
		return i, false
	}
	return i, bytes.Equal(ref, m.Refs[i])
}

// Validate requires at least one reference.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}

// Copy produces a new MultiRef with a copy of the reference list.
func (m *MultiRef) Copy() CloneableData {
	refs := make([][]byte, len(m.Refs))
	copy(refs, m.Refs)
	return &MultiRef{Refs: refs}
}

// Marshal encodes the references as repeated length-delimited field 1
// entries, the same bytes a protobuf compiler would produce.
func (m *MultiRef) Marshal() ([]byte, error) {
	var scratch [binary.MaxVarintLen64]byte
	out := make([]byte, 0, m.size())
	for _, ref := range m.Refs {
		out = append(out, 0xa)
		n := binary.PutUvarint(scratch[:], uint64(len(ref)))
		out = append(out, scratch[:n]...)
		out = append(out, ref...)
	}
	return out, nil
}

// Unmarshal parses the wire format written by Marshal.
func (m *MultiRef) Unmarshal(data []byte) error {
	var refs [][]byte
	for len(data) > 0 {
		if data[0] != 0xa {
			return errors.Wrapf(errors.ErrInput, "unexpected field header %d", data[0])
		}
		size, n := binary.Uvarint(data[1:])
		if n <= 0 {
			return errors.Wrap(errors.ErrInput, "invalid length header")
		}
		rest := data[1+n:]
		if uint64(len(rest)) < size {
			return errors.Wrap(errors.ErrInput, "truncated reference")
		}
		ref := make([]byte, size)
		copy(ref, rest[:size])
		refs = append(refs, ref)
		data = rest[size:]
	}
	m.Refs = refs
	return nil
}

func (m *MultiRef) size() int {
	var n int
	for _, ref := range m.Refs {
		l := len(ref)
		n += 1 + uvarintSize(uint64(l)) + l
	}
	return n
}

func uvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
