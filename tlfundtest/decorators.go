package tlfundtest

import "github.com/iov-one/tlfund"

// Calls counts the Check and Deliver invocations of a mock. A call is
// counted even when it fails.
type Calls struct {
	check   int
	deliver int
}

func (c *Calls) CheckCallCount() int   { return c.check }
func (c *Calls) DeliverCallCount() int { return c.deliver }
func (c *Calls) CallCount() int        { return c.check + c.deliver }

// Decorator passes every call to the next handler, unless CheckErr or
// DeliverErr is set. Then the error is returned and the next handler is not
// called.
type Decorator struct {
	Calls
	CheckErr   error
	DeliverErr error
}

var _ tlfund.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Checker) (*tlfund.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Deliverer) (*tlfund.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that runs h behind d.
func Decorate(h tlfund.Handler, d tlfund.Decorator) tlfund.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   tlfund.Handler
	decorator tlfund.Decorator
}

func (d decorated) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
