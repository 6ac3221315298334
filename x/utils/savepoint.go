package utils

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
)

// Savepoint runs the rest of the stack on a cache wrap of the store. The
// cache is written only when the call succeeds, so a failing transaction
// leaves no partial change behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tlfund.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Checker) (*tlfund.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *tlfund.CheckResult
	err := isolate(db, func(cache tlfund.KVStore) error {
		var err error
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Deliverer) (*tlfund.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *tlfund.DeliverResult
	err := isolate(db, func(cache tlfund.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache wrap of db. Stores that cannot be cache
// wrapped are passed through unchanged.
func isolate(db tlfund.KVStore, fn func(tlfund.KVStore) error) error {
	cacheable, ok := db.(tlfund.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
