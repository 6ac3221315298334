package tlfundtest

import "github.com/iov-one/tlfund"

// Handler returns the configured results, or CheckErr and DeliverErr when
// they are set.
type Handler struct {
	Calls
	CheckResult   tlfund.CheckResult
	CheckErr      error
	DeliverResult tlfund.DeliverResult
	DeliverErr    error
}

var _ tlfund.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes the key, value pair and returns the error (may be nil)
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ tlfund.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &tlfund.CheckResult{}, h.Err
}

func (h WriteHandler) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &tlfund.DeliverResult{}, h.Err
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ tlfund.Handler = PanicHandler{}

func (h PanicHandler) Check(tlfund.Context, tlfund.KVStore, tlfund.Tx) (*tlfund.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(tlfund.Context, tlfund.KVStore, tlfund.Tx) (*tlfund.DeliverResult, error) {
	panic(h.Msg)
}
