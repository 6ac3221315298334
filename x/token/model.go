package token

import (
	"regexp"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/orm"
)

const (
	// ProgramName is the program that owns associated account addresses.
	ProgramName = "token"

	maxDecimals = 18
)

var isAssetName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

var _ orm.Model = (*Asset)(nil)

// Validate ensures the asset declaration is valid.
func (a *Asset) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	if !isAssetName(a.Name) {
		errs = errors.AppendField(errs, "Name", errors.ErrInput)
	}
	if a.Decimals > maxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.ErrInput)
	}
	return errs
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the account is valid.
func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	if !coin.IsCC(a.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	errs = errors.AppendField(errs, "Authority", a.Authority.Validate())
	return errs
}

// Coin returns the balance of the account as a coin of its asset.
func (a *Account) Coin() coin.Coin {
	return coin.NewCoin(a.Balance, a.Ticker)
}

// NewAccount returns an empty account of given asset controlled by the
// authority.
func NewAccount(ticker string, authority tlfund.Address) *Account {
	return &Account{
		Metadata:  &tlfund.Metadata{Schema: 1},
		Ticker:    ticker,
		Authority: authority,
	}
}

// AssociatedAddress returns the address of the account that owner holds for
// given asset.
func AssociatedAddress(owner tlfund.Address, ticker string) (tlfund.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", ticker)
	}
	pda, err := tlfund.DeriveAddress(ProgramName, owner, []byte(ticker))
	if err != nil {
		return nil, errors.Wrap(err, "derive associated address")
	}
	return pda.Address(), nil
}

// NewAssetBucket returns a bucket storing assets under their tickers.
func NewAssetBucket() orm.ModelBucket {
	return orm.NewModelBucket("asset", &Asset{})
}

// NewAccountBucket returns a bucket storing accounts under their addresses.
// Accounts are indexed by their authority.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokacct", &Account{},
		orm.WithIndex("authority", authorityIndex, false),
	)
}

func authorityIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	acct, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only take index of Account, got %T", obj.Value())
	}
	return acct.Authority, nil
}
