package token

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/orm"
	"github.com/iov-one/tlfund/x"
)

// Controller is the asset transfer and account creation service.
type Controller interface {
	AccountCreator
	Transferer
	Balance(db tlfund.ReadOnlyKVStore, addr tlfund.Address) (coin.Coin, error)
	Account(db tlfund.ReadOnlyKVStore, addr tlfund.Address) (*Account, error)
	Asset(db tlfund.ReadOnlyKVStore, ticker string) (*Asset, error)
}

// AccountCreator binds new accounts to an asset and an authority.
type AccountCreator interface {
	// CreateAccount creates an empty account under given address. The
	// asset must be declared and the address must not be in use.
	CreateAccount(db tlfund.KVStore, addr tlfund.Address, ticker string, authority tlfund.Address) (*Account, error)

	// EnsureAssociated returns the address of the associated account of
	// the owner for given asset, creating it when it does not exist.
	EnsureAssociated(db tlfund.KVStore, owner tlfund.Address, ticker string) (tlfund.Address, error)
}

// Transferer moves funds between accounts.
type Transferer interface {
	// Transfer moves amount from one account to another. The authority of
	// the source account must be authenticated by given authenticator.
	Transfer(ctx tlfund.Context, db tlfund.KVStore, auth x.Authenticator, from, to tlfund.Address, amount coin.Coin) error
}

// BaseController is the default Controller implementation backed by the
// asset and account buckets.
type BaseController struct {
	assets   orm.ModelBucket
	accounts orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default buckets.
func NewController() BaseController {
	return BaseController{
		assets:   NewAssetBucket(),
		accounts: NewAccountBucket(),
	}
}

// Asset returns the declaration of given asset or ErrNotFound.
func (c BaseController) Asset(db tlfund.ReadOnlyKVStore, ticker string) (*Asset, error) {
	var asset Asset
	if err := c.assets.One(db, []byte(ticker), &asset); err != nil {
		return nil, errors.Wrapf(err, "asset %q", ticker)
	}
	return &asset, nil
}

// Account returns the account stored under given address or ErrNotFound.
func (c BaseController) Account(db tlfund.ReadOnlyKVStore, addr tlfund.Address) (*Account, error) {
	var acct Account
	if err := c.accounts.One(db, addr, &acct); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acct, nil
}

// Balance returns the funds held by the account.
func (c BaseController) Balance(db tlfund.ReadOnlyKVStore, addr tlfund.Address) (coin.Coin, error) {
	acct, err := c.Account(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	return acct.Coin(), nil
}

func (c BaseController) CreateAccount(db tlfund.KVStore, addr tlfund.Address, ticker string, authority tlfund.Address) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	if _, err := c.Asset(db, ticker); err != nil {
		return nil, err
	}
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acct := NewAccount(ticker, authority)
	if err := c.accounts.Put(db, addr, acct); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return acct, nil
}

func (c BaseController) EnsureAssociated(db tlfund.KVStore, owner tlfund.Address, ticker string) (tlfund.Address, error) {
	addr, err := AssociatedAddress(owner, ticker)
	if err != nil {
		return nil, err
	}
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	if _, err := c.CreateAccount(db, addr, ticker, owner); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c BaseController) Transfer(ctx tlfund.Context, db tlfund.KVStore, auth x.Authenticator, from, to tlfund.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if from.Equals(to) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Ticker != dst.Ticker {
		return errors.Wrapf(errors.ErrInput, "cannot move %s to %s account", src.Ticker, dst.Ticker)
	}
	if !auth.HasAddress(ctx, src.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "source authority signature missing")
	}

	left, err := src.Coin().Subtract(amount)
	if err != nil {
		return err
	}
	total, err := dst.Coin().Add(amount)
	if err != nil {
		return err
	}
	src.Balance = left.Amount
	dst.Balance = total.Amount

	if err := c.accounts.Put(db, from, src); err != nil {
		return errors.Wrap(err, "cannot store source")
	}
	if err := c.accounts.Put(db, to, dst); err != nil {
		return errors.Wrap(err, "cannot store destination")
	}
	tlfund.GetLogger(ctx).Debug("transfer", "from", from, "to", to, "amount", amount.String())
	return nil
}

// issue credits the account with given amount. It is only used by the
// genesis initializer.
func (c BaseController) issue(db tlfund.KVStore, addr tlfund.Address, amount coin.Coin) error {
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	total, err := acct.Coin().Add(amount)
	if err != nil {
		return err
	}
	acct.Balance = total.Amount
	return c.accounts.Put(db, addr, acct)
}
