package sigs

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/tlfundtest"
)

// StdTx is a signed transaction carrying a raw payload.
type StdTx struct {
	*tlfundtest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ tlfund.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &tlfundtest.Msg{RoutePath: "test/payload"}
	return &StdTx{
		Tx:      &tlfundtest.Tx{Msg: msg},
		Payload: payload,
	}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []tlfund.Condition
}

var _ tlfund.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx tlfund.Context, store tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &tlfund.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx tlfund.Context, store tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &tlfund.DeliverResult{}, nil
}
