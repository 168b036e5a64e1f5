package app

import (
	"testing"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/stretchr/testify/assert"
)

func TestResultSetRoundTrip(t *testing.T) {
	models := []swaplock.Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("happy"), Value: []byte("puppy")},
	}

	keys := ResultsFromKeys(models)
	values := ResultsFromValues(models)

	raw, err := keys.Marshal()
	assert.NoError(t, err)
	var loaded ResultSet
	assert.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, keys.Results, loaded.Results)

	joined, err := JoinResults(&loaded, values)
	assert.NoError(t, err)
	assert.Equal(t, models, joined)
}

func TestJoinResultsMismatch(t *testing.T) {
	keys := &ResultSet{Results: [][]byte{[]byte("a"), []byte("b")}}
	values := &ResultSet{Results: [][]byte{[]byte("1")}}

	_, err := JoinResults(keys, values)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestUnmarshalOneResult(t *testing.T) {
	set := ResultSet{Results: [][]byte{[]byte("first"), []byte("second")}}
	raw, err := set.Marshal()
	assert.NoError(t, err)

	var value sliceValue
	assert.NoError(t, UnmarshalOneResult(raw, &value))
	assert.Equal(t, []byte("first"), []byte(value))

	// no data means no change to the model
	value = sliceValue([]byte("untouched"))
	assert.NoError(t, UnmarshalOneResult(nil, &value))
	assert.Equal(t, []byte("untouched"), []byte(value))
}

// sliceValue implements swaplock.Persistent by keeping the raw bytes.
type sliceValue []byte

func (s sliceValue) Marshal() ([]byte, error) {
	return s, nil
}

func (s *sliceValue) Unmarshal(raw []byte) error {
	*s = raw
	return nil
}
