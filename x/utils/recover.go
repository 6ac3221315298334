package utils

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ tlfund.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into ErrPanic
func (Recovery) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Checker) (_ *tlfund.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into ErrPanic
func (Recovery) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Deliverer) (_ *tlfund.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
