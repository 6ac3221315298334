package coin

import (
	"sort"

	"github.com/iov-one/tlfund/errors"
)

// Coins is a set of coins of different assets, as declared for a genesis
// account. Use NormalizeCoins before relying on its order.
type Coins []*Coin

// Add returns the set increased by c. Zero coins are ignored.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	i := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= c.Ticker
	})
	if i < len(cs) && cs[i].Ticker == c.Ticker {
		sum, err := cs[i].Add(c)
		if err != nil {
			return nil, err
		}
		cs[i] = &sum
		return cs, nil
	}

	res := append(cs, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Validate requires every coin to be valid and non zero, and the set to be
// sorted by ticker without duplicates.
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		if e := c.Validate(); e != nil {
			err = errors.Append(err, errors.Wrap(e, "coin"))
			continue
		}
		if c.IsZero() {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "zero coins"))
		}
		if c.Ticker <= last {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted"))
		}
		last = c.Ticker
	}
	return err
}

// NormalizeCoins merges coins of the same asset, drops empty ones and sorts
// the result by ticker.
func NormalizeCoins(cs Coins) (Coins, error) {
	var res Coins
	for _, c := range cs {
		if IsEmpty(c) {
			continue
		}
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}
