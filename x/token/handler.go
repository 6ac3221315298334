package token

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/x"
)

const (
	sendTxCost          int64 = 100
	createAccountTxCost int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tlfund.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
	r.Handle(CreateAccountMsg{}.Path(), NewCreateAccountHandler(auth, control))
}

// RegisterQuery will register the assets as "/assets" and the accounts as
// "/accounts".
func RegisterQuery(qr tlfund.QueryRouter) {
	NewAssetBucket().Register("assets", qr)
	NewAccountBucket().Register("accounts", qr)
}

// SendHandler will handle sending funds between accounts.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ tlfund.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	src, err := h.control.Account(db, msg.Source)
	if err != nil {
		return nil, errors.Wrap(err, "source")
	}
	if !h.auth.HasAddress(ctx, src.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source authority signature missing")
	}
	return &tlfund.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the funds from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, h.auth, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &tlfund.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tlfund.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// CreateAccountHandler creates associated accounts.
type CreateAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ tlfund.Handler = CreateAccountHandler{}

// NewCreateAccountHandler creates a handler for CreateAccountMsg
func NewCreateAccountHandler(auth x.Authenticator, control Controller) CreateAccountHandler {
	return CreateAccountHandler{
		auth:    auth,
		control: control,
	}
}

func (h CreateAccountHandler) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tlfund.CheckResult{GasAllocated: createAccountTxCost}, nil
}

// Deliver creates the account and returns its address as the result data.
func (h CreateAccountHandler) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, err := AssociatedAddress(owner, msg.Ticker)
	if err != nil {
		return nil, err
	}
	if _, err := h.control.CreateAccount(db, addr, msg.Ticker, owner); err != nil {
		return nil, err
	}
	return &tlfund.DeliverResult{Data: addr}, nil
}

func (h CreateAccountHandler) validate(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*CreateAccountMsg, tlfund.Address, error) {
	var msg CreateAccountMsg
	if err := tlfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := x.AnySigner(ctx, h.auth, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.control.Asset(db, msg.Ticker); err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}
