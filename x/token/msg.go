package token

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
)

const maxMemoSize = 128

var _ tlfund.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "token/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Source.Equals(m.Destination) {
		errs = errors.AppendField(errs, "Destination", errors.Wrap(errors.ErrInput, "same as source"))
	}
	if err := m.Amount.Validate(); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}

var _ tlfund.Msg = (*CreateAccountMsg)(nil)

// Path returns the routing path for this message.
func (CreateAccountMsg) Path() string {
	return "token/create_account"
}

// Validate makes sure that this is sensible.
func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Owner != nil {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	return errs
}
