package utils

import (
	"time"

	"github.com/iov-one/tlfund"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ tlfund.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Checker) (*tlfund.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logResult(ctx, "check", tx, start, resLog, err)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Deliverer) (*tlfund.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logResult(ctx, "deliver", tx, start, resLog, err)
	return res, err
}

func logResult(ctx tlfund.Context, phase string, tx tlfund.Tx, start time.Time, resLog string, err error) {
	logger := tlfund.GetLogger(ctx).With(
		"phase", phase,
		"duration", time.Since(start)/time.Microsecond,
	)
	if msg, merr := tx.GetMsg(); merr == nil && msg != nil {
		logger = logger.With("path", msg.Path())
	}
	if resLog != "" {
		logger = logger.With("log", resLog)
	}

	switch {
	case err != nil:
		logger.Error("tx failed", "err", err)
	case phase == "check":
		logger.Debug("tx ok")
	default:
		logger.Info("tx ok")
	}
}
