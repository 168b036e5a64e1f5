package app

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// ResultSet is the serialization format for all query responses. Both the Key
// and Value fields of a query result carry one, so a response can hold 0 to N
// entries while keeping a uniform shape.
type ResultSet struct {
	Results [][]byte
}

var _ swaplock.Persistent = (*ResultSet)(nil)

// ResultsFromKeys returns a ResultSet of all keys given a set of models.
func ResultsFromKeys(models []swaplock.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of models.
func ResultsFromValues(models []swaplock.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes them a
// consistent whole again.
func JoinResults(keys, values *ResultSet) ([]swaplock.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "mismatched result set sizes: %d != %d", len(kref), len(vref))
	}
	mods := make([]swaplock.Model, len(kref))
	for i := range mods {
		mods[i] = swaplock.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a ResultSet and if it is not empty, unmarshal
// the first result into o.
func UnmarshalOneResult(bz []byte, o swaplock.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}

	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}

	return o.Unmarshal(res.Results[0])
}

// Marshal encodes the results as repeated length-delimited field 1 entries,
// the same bytes a protobuf compiler would produce.
func (r *ResultSet) Marshal() ([]byte, error) {
	var scratch [binary.MaxVarintLen64]byte
	out := make([]byte, 0, r.size())
	for _, res := range r.Results {
		out = append(out, 0xa)
		n := binary.PutUvarint(scratch[:], uint64(len(res)))
		out = append(out, scratch[:n]...)
		out = append(out, res...)
	}
	return out, nil
}

// Unmarshal parses the wire format written by Marshal.
func (r *ResultSet) Unmarshal(data []byte) error {
	var results [][]byte
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
			return errors.Wrap(errors.ErrInput, "truncated result")
		}
		res := make([]byte, size)
		copy(res, rest[:size])
		results = append(results, res)
		data = rest[size:]
	}
	r.Results = results
	return nil
}

func (r *ResultSet) size() int {
	var n int
	for _, res := range r.Results {
		l := len(res)
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
