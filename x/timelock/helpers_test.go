package timelock

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/app"
	"github.com/iov-one/tlfund/store"
	"github.com/iov-one/tlfund/tlfundtest"
	"github.com/iov-one/tlfund/x/token"
	"github.com/iov-one/tlfund/x/utils"
)

// env is a fully wired handler stack on top of a store with IOV and ETH
// declared. The depositor holds 5000 IOV and the stranger 10 IOV.
type env struct {
	db      tlfund.CacheableKVStore
	control token.BaseController
	auth    *tlfundtest.CtxAuth
	handler tlfund.Handler

	depositor   tlfund.Condition
	beneficiary tlfund.Condition
	stranger    tlfund.Condition
}

func newEnv(t testing.TB) *env {
	t.Helper()
	e := &env{
		db:          store.MemStore(),
		control:     token.NewController(),
		auth:        &tlfundtest.CtxAuth{Key: "timelock"},
		depositor:   tlfundtest.NewCondition(),
		beneficiary: tlfundtest.NewCondition(),
		stranger:    tlfundtest.NewCondition(),
	}

	genesis := fmt.Sprintf(`{
		"assets": [
			{"ticker": "IOV", "name": "Internet of Values", "decimals": 9},
			{"ticker": "ETH", "name": "Ether", "decimals": 18}
		],
		"accounts": [
			{"owner": %q, "coins": ["5000 IOV"]},
			{"owner": %q, "coins": ["10 IOV"]}
		]
	}`, e.depositor.Address().String(), e.stranger.Address().String())
	opts := tlfund.Options{"token": json.RawMessage(genesis)}
	var initializer token.Initializer
	if err := initializer.FromGenesis(opts, e.db); err != nil {
		t.Fatalf("cannot load genesis: %s", err)
	}

	rt := app.NewRouter()
	RegisterRoutes(rt, e.auth, e.control)
	token.RegisterRoutes(rt, e.auth, e.control)
	e.handler = app.ChainDecorators(
		utils.NewActionTagger(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(rt)
	return e
}

// ctx returns a context at given block time signed by given conditions.
func (e *env) ctx(now tlfund.UnixTime, signers ...tlfund.Condition) tlfund.Context {
	ctx := tlfund.WithBlockTime(context.Background(), now.Time())
	return e.auth.SetConditions(ctx, signers...)
}

func (e *env) deliver(ctx tlfund.Context, msg tlfund.Msg) (*tlfund.DeliverResult, error) {
	return e.handler.Deliver(ctx, e.db, &tlfundtest.Tx{Msg: msg})
}

func (e *env) check(ctx tlfund.Context, msg tlfund.Msg) (*tlfund.CheckResult, error) {
	cache := e.db.CacheWrap()
	defer cache.Discard()
	return e.handler.Check(ctx, cache, &tlfundtest.Tx{Msg: msg})
}

// balance returns the balance of the account or zero if it does not exist.
func (e *env) balance(t testing.TB, addr tlfund.Address) uint64 {
	t.Helper()
	acct, err := e.control.Account(e.db, addr)
	if err != nil {
		return 0
	}
	return acct.Balance
}

func (e *env) associated(t testing.TB, owner tlfund.Condition, ticker string) tlfund.Address {
	t.Helper()
	addr, err := token.AssociatedAddress(owner.Address(), ticker)
	if err != nil {
		t.Fatalf("cannot derive associated address: %s", err)
	}
	return addr
}

// createFund locks amount of IOV for the beneficiary and returns the fund
// address.
func (e *env) createFund(t testing.TB, seed string, amount uint64, unlock tlfund.UnixTime) tlfund.Address {
	t.Helper()
	res, err := e.deliver(e.ctx(unlock.Add(-time.Hour), e.depositor), &CreateFundMsg{
		Metadata:    &tlfund.Metadata{Schema: 1},
		Seed:        seed,
		Ticker:      "IOV",
		Amount:      amount,
		UnlockTime:  unlock,
		Beneficiary: e.beneficiary.Address(),
	})
	if err != nil {
		t.Fatalf("cannot create fund: %+v", err)
	}
	return res.Data
}

func (e *env) fund(t testing.TB, addr tlfund.Address) *FundRecord {
	t.Helper()
	var f FundRecord
	if err := NewFundBucket().One(e.db, addr, &f); err != nil {
		t.Fatalf("cannot load fund: %s", err)
	}
	return &f
}
