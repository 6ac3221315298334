package store

import (
	"testing"

	"github.com/iov-one/tlfund/tlfundtest/assert"
)

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	// make sure proper iteration works
	i := 0
	for iter := NewSliceIterator(models); iter.Valid(); assert.Nil(t, iter.Next()) {
		if i >= size {
			t.Fatalf("iterator step greater than the size: %d >= %d", i, size)
		}
		assert.Equal(t, ks[i], iter.Key())
		assert.Equal(t, vs[i], iter.Value())
		i++
	}
	assert.Equal(t, size, i)

	it := NewSliceIterator(models)
	if !it.Valid() {
		t.Fatal("iterator expected to be valid")
	}
	it.Close()
	if it.Valid() {
		t.Fatal("closed iterator must be invalid")
	}
	if err := it.Next(); err == nil {
		t.Fatal("closed iterator must not advance")
	}
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("gone"), []byte("soon")))

	b := NewNonAtomicBatch(db)
	assert.Nil(t, b.Set([]byte("a"), []byte("A")))
	assert.Nil(t, b.Delete([]byte("gone")))

	// Nothing is visible before the write.
	got, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, b.Write())
	got, err = db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("A"), got)
	has, err := db.Has([]byte("gone"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	// A written batch is empty and replays nothing.
	assert.Nil(t, db.Set([]byte("a"), []byte("B")))
	assert.Nil(t, b.Write())
	got, err = db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("B"), got)
}
