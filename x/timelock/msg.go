package timelock

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
)

var _ tlfund.Msg = (*CreateFundMsg)(nil)

// Path returns the routing path for this message.
func (CreateFundMsg) Path() string {
	return "timelock/create"
}

// Validate makes sure that this is sensible. Unlock times in the past are
// accepted and produce a fund that can be redeemed right away.
func (m *CreateFundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Depositor != nil {
		errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	}
	if m.Source != nil {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Seed", validateSeed(m.Seed))
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "UnlockTime", m.UnlockTime.Validate())
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	return errs
}

var _ tlfund.Msg = (*RedeemMsg)(nil)

// Path returns the routing path for this message.
func (RedeemMsg) Path() string {
	return "timelock/redeem"
}

// Validate makes sure that this is sensible.
func (m *RedeemMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "FundAddress", m.FundAddress.Validate())
	return errs
}
