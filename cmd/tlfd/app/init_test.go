package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/store"
	"github.com/iov-one/tlfund/x/token"
)

func TestGenInitOptions(t *testing.T) {
	cases := map[string]struct {
		args       []string
		wantErr    *errors.Error
		wantTicker string
		wantAmount uint64
	}{
		"defaults": {
			wantTicker: "IOV",
			wantAmount: defaultAmount,
		},
		"custom ticker": {
			args:       []string{"ETH"},
			wantTicker: "ETH",
			wantAmount: defaultAmount,
		},
		"custom ticker and amount": {
			args:       []string{"ETH", "77"},
			wantTicker: "ETH",
			wantAmount: 77,
		},
		"invalid ticker": {
			args:    []string{"eth"},
			wantErr: errors.ErrCurrency,
		},
		"invalid amount": {
			args:    []string{"ETH", "-5"},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := GenInitOptions(tc.args)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)

			var opts tlfund.Options
			require.NoError(t, json.Unmarshal(raw, &opts))
			db := store.MemStore()
			require.NoError(t, (&token.Initializer{}).FromGenesis(opts, db))

			control := token.NewController()
			_, err = control.Asset(db, tc.wantTicker)
			require.NoError(t, err)
			wantCoin := coin.NewCoin(tc.wantAmount, tc.wantTicker)
			assert.Contains(t, string(raw), `"`+wantCoin.String()+`"`)
		})
	}
}

func TestGenesisState(t *testing.T) {
	owner := tlfund.NewAddress([]byte("owner"))
	raw, err := genesisState(owner, coin.NewCoin(1234, "ETH"))
	require.NoError(t, err)

	var opts tlfund.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	require.NoError(t, (&token.Initializer{}).FromGenesis(opts, db))

	addr, err := token.AssociatedAddress(owner, "ETH")
	require.NoError(t, err)
	acct, err := token.NewController().Account(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), acct.Balance)
	assert.Equal(t, owner, acct.Authority)
}
