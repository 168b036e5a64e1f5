package orm

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// RegisterQuery will register a handler for "/" that answers lookups of any
// raw database key, so generic clients can read state they know the full
// key of.
func RegisterQuery(qr swaplock.QueryRouter) {
	qr.Register("/", rawQueryHandler{})
}

type rawQueryHandler struct{}

var _ swaplock.QueryHandler = rawQueryHandler{}

// Query handles exact match and prefix queries over the full key space.
func (rawQueryHandler) Query(db swaplock.ReadOnlyKVStore, mod string, data []byte) ([]swaplock.Model, error) {
	switch mod {
	case swaplock.KeyQueryMod:
		value := db.Get(data)
		if value == nil {
			return nil, nil
		}
		return []swaplock.Model{{Key: data, Value: value}}, nil
	case swaplock.PrefixQueryMod:
		return queryPrefix(db, data), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier: %s", mod)
	}
}

// ConsumeIterator reads all remaining models from the iterator and closes
// it.
func ConsumeIterator(iter swaplock.Iterator) []swaplock.Model {
	defer iter.Close()

	var res []swaplock.Model
	for iter.Valid() {
		res = append(res, swaplock.Pair(iter.Key(), iter.Value()))
		iter.Next()
	}
	return res
}

// queryPrefix returns all models with keys under the given prefix, sorted by
// key.
func queryPrefix(db swaplock.ReadOnlyKVStore, prefix []byte) []swaplock.Model {
	start, end := prefixRange(prefix)
	return ConsumeIterator(db.Iterator(start, end))
}

// prefixRange turns a prefix into the (start, end) arguments of an iterator
// covering exactly the keys with that prefix:
//
//	{1, 3, 4} -> [{1, 3, 4}, {1, 3, 5})
//	{}        -> [nil, nil)  (everything)
//
// The end is the prefix with its last byte incremented, carrying into
// earlier bytes on overflow. A prefix of all 0xff has no upper bound, so the
// end is nil.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	for end[l] == 0 {
		if l == 0 {
			return prefix, nil
		}
		l--
		end[l]++
	}
	return prefix, end
}
