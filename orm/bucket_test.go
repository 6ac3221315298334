package orm

import (
	"testing"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/store"
	"github.com/iov-one/tlfund/tlfundtest/assert"
)

func TestBucketNames(t *testing.T) {
	assert.Panics(t, func() { NewBucket("a", &Counter{}) })
	assert.Panics(t, func() { NewBucket("Upper", &Counter{}) })
	assert.Panics(t, func() {
		NewBucket("cnts", &Counter{}).
			WithIndex("value", indexByValue, false).
			WithIndex("value", indexByValue, true)
	})

	b := NewBucket("cnts", &Counter{})
	assert.Equal(t, "cnts", b.Name())
	assert.Equal(t, []byte("cnts:abc"), b.DBKey([]byte("abc")))
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &Counter{})

	obj, err := b.Get(db, []byte("missing"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), &Counter{Count: 5})))
	obj, err = b.Get(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), obj.Key())
	assert.Equal(t, &Counter{Count: 5}, obj.Value())

	if err := b.Save(db, NewSimpleObj(nil, &Counter{Count: 5})); !errors.ErrEmpty.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}

	assert.Nil(t, b.Delete(db, []byte("a")))
	obj, err = b.Get(db, []byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &Counter{}).WithIndex("value", indexByValue, false)

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a1"), &Counter{Count: 7})))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a2"), &Counter{Count: 7})))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("b1"), &Counter{Count: 8})))

	qr := tlfund.NewQueryRouter()
	b.Register("counters", qr)

	res, err := qr.Handler("/counters").Query(db, tlfund.KeyQueryMod, []byte("a2"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:a2"), res[0].Key)

	res, err = qr.Handler("/counters").Query(db, tlfund.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = qr.Handler("/counters").Query(db, tlfund.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/counters/value").Query(db, tlfund.KeyQueryMod, []byte("7"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, []byte("cnts:a1"), res[0].Key)
	assert.Equal(t, []byte("cnts:a2"), res[1].Key)

	res, err = qr.Handler("/counters/value").Query(db, tlfund.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(res))

	if _, err := qr.Handler("/counters").Query(db, "range", nil); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
}
