package orm

import (
	"bytes"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object. A nil key
// means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or a MultiRef of primary keys (!unique).
//
// All references of a single index key are stored together, so this index
// should only be used when the amount of entities sharing a key is small.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ tlfund.QueryHandler = Index{}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     append([]byte(indexPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db tlfund.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be empty), or an error
func (i Index) GetAt(db tlfund.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := tlfund.Unmarshal(val, &data); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

// GetPrefix returns all references that have an index that
// begins with a given prefix
func (i Index) GetPrefix(db tlfund.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	itr, err := db.Iterator(prefixRange(i.IndexKey(prefix)))
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	var data [][]byte
	for ; itr.Valid(); err = itr.Next() {
		if err != nil {
			return nil, err
		}
		if i.unique {
			data = append(data, itr.Value())
			continue
		}
		var refs MultiRef
		if err := tlfund.Unmarshal(itr.Value(), &refs); err != nil {
			return nil, err
		}
		data = append(data, refs.Refs...)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Query handles queries from the QueryRouter
func (i Index) Query(db tlfund.ReadOnlyKVStore, mod string, data []byte) ([]tlfund.Model, error) {
	var (
		refs [][]byte
		err  error
	)
	switch mod {
	case tlfund.KeyQueryMod:
		refs, err = i.GetAt(db, data)
	case tlfund.PrefixQueryMod:
		refs, err = i.GetPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "not implemented: %s", mod)
	}
	if err != nil {
		return nil, err
	}
	return i.loadRefs(db, refs)
}

func (i Index) loadRefs(db tlfund.ReadOnlyKVStore, refs [][]byte) ([]tlfund.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]tlfund.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = tlfund.Pair(key, value)
	}
	return res, nil
}

func (i Index) move(db tlfund.KVStore, prev Object, save Object) error {
	// if the primary key is not equal, we have a problem
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	// Insert first so a unique constraint violation leaves the old
	// reference in place.
	if err := i.insert(db, newKey, save.Key()); err != nil {
		return err
	}
	return i.remove(db, oldKey, prev.Key())
}

func (i Index) remove(db tlfund.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		// if something else was here, don't delete
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "cannot remove index from invalid object")
		}
		return db.Delete(key)
	}

	var data MultiRef
	if err := tlfund.Unmarshal(cur, &data); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	// nothing left, delete this key
	if data.Size() == 0 {
		return db.Delete(key)
	}
	raw, err := tlfund.Marshal(&data)
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i Index) insert(db tlfund.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := tlfund.Unmarshal(cur, &data); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	raw, err := tlfund.Marshal(&data)
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}
