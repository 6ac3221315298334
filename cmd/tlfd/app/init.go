package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/app"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/crypto"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	defaultTicker = "IOV"
	defaultAmount = 1000000000
)

// GenInitOptions declares a single asset and gives all of it to a freshly
// generated key, to use for dev mode. The ticker and amount can be passed as
// arguments. The private key is printed so it can be imported by a client.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := defaultTicker
	if len(args) > 0 {
		ticker = args[0]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", ticker)
	}

	var amount uint64 = defaultAmount
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrAmount, "cannot parse %q", args[1])
		}
		amount = n
	}

	addr, secret := GenerateKey()
	fmt.Printf("genesis key: %s\n", secret)
	return genesisState(addr, coin.NewCoin(amount, ticker))
}

func genesisState(owner tlfund.Address, c coin.Coin) (json.RawMessage, error) {
	type dict map[string]interface{}
	return json.Marshal(dict{
		"token": dict{
			"assets": []token.GenesisAsset{
				{Ticker: c.Ticker, Name: c.Ticker, Decimals: 9},
			},
			"accounts": []dict{
				{"owner": owner, "coins": []string{c.String()}},
			},
		},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "abci.db")
	}

	application, err := Application("tlfund", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		&token.Initializer{},
	))
	application.WithLogger(logger)
	return application, nil
}

// GenerateKey returns the address of a new ed25519 key along with the hex
// encoded private key.
func GenerateKey() (tlfund.Address, string) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()
	return addr, hex.EncodeToString(privKey.Ed25519)
}
