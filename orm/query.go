package orm

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr tlfund.Iterator) ([]tlfund.Model, error) {
	defer itr.Close()

	var res []tlfund.Model
	for itr.Valid() {
		res = append(res, tlfund.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// queryPrefix returns all models in the store whose key begins with prefix.
func queryPrefix(db tlfund.ReadOnlyKVStore, prefix []byte) ([]tlfund.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// RegisterQuery exposes the raw store under "/". Data is the full database
// key, or a key prefix when the "prefix" modifier is used.
func RegisterQuery(qr tlfund.QueryRouter) {
	qr.Register("/", tlfund.QueryFunc(rawQuery))
}

func rawQuery(db tlfund.ReadOnlyKVStore, mod string, data []byte) ([]tlfund.Model, error) {
	switch mod {
	case tlfund.KeyQueryMod:
		val, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if val == nil {
			return nil, nil
		}
		return []tlfund.Model{tlfund.Pair(data, val)}, nil
	case tlfund.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
