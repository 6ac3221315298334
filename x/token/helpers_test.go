package token

import (
	"testing"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/store"
)

// newTestDB returns a store with IOV and ETH assets declared.
func newTestDB(t testing.TB) tlfund.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	assets := NewAssetBucket()
	for _, ticker := range []string{"IOV", "ETH"} {
		a := &Asset{Metadata: &tlfund.Metadata{Schema: 1}, Name: ticker + " token", Decimals: 9}
		if err := assets.Put(db, []byte(ticker), a); err != nil {
			t.Fatalf("cannot declare %s: %s", ticker, err)
		}
	}
	return db
}

// fund creates the associated account of the owner and credits it.
func fund(t testing.TB, db tlfund.KVStore, owner tlfund.Address, amount coin.Coin) tlfund.Address {
	t.Helper()
	c := NewController()
	addr, err := c.EnsureAssociated(db, owner, amount.Ticker)
	if err != nil {
		t.Fatalf("cannot create account: %s", err)
	}
	if amount.IsZero() {
		return addr
	}
	if err := c.issue(db, addr, amount); err != nil {
		t.Fatalf("cannot issue: %s", err)
	}
	return addr
}
