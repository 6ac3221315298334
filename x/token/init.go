package token

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
)

const optKey = "token"

// GenesisAsset declares an asset in the genesis file.
type GenesisAsset struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Decimals uint32 `json:"decimals"`
}

// GenesisAccount is used to parse the json from genesis file. Each coin is
// credited to the associated account of the owner. Coins of the same asset
// are summed.
type GenesisAccount struct {
	Owner tlfund.Address `json:"owner"`
	Coins coin.Coins     `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ tlfund.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial asset and account info from genesis and
// save it to the database
func (*Initializer) FromGenesis(opts tlfund.Options, db tlfund.KVStore) error {
	var conf struct {
		Assets   []GenesisAsset   `json:"assets"`
		Accounts []GenesisAccount `json:"accounts"`
	}
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrap(err, "cannot load token genesis")
	}

	assets := NewAssetBucket()
	for i, a := range conf.Assets {
		if !coin.IsCC(a.Ticker) {
			return errors.Wrapf(errors.ErrCurrency, "asset #%d: ticker %q", i, a.Ticker)
		}
		if err := assets.Has(db, []byte(a.Ticker)); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "asset %q", a.Ticker)
		}
		asset := &Asset{
			Metadata: &tlfund.Metadata{Schema: 1},
			Name:     a.Name,
			Decimals: a.Decimals,
		}
		if err := assets.Put(db, []byte(a.Ticker), asset); err != nil {
			return errors.Wrapf(err, "asset %q", a.Ticker)
		}
	}

	control := NewController()
	for i, a := range conf.Accounts {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		coins, err := coin.NormalizeCoins(a.Coins)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		for _, c := range coins {
			addr, err := control.EnsureAssociated(db, a.Owner, c.Ticker)
			if err != nil {
				return errors.Wrapf(err, "account #%d", i)
			}
			if err := control.issue(db, addr, *c); err != nil {
				return errors.Wrapf(err, "account #%d", i)
			}
		}
	}
	return nil
}
