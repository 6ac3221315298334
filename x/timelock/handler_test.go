package timelock

import (
	"context"
	"strings"
	"testing"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/tlfundtest"
	"github.com/iov-one/tlfund/tlfundtest/assert"
	"github.com/iov-one/tlfund/x/token"
	"github.com/iov-one/tlfund/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

const unlockAt tlfund.UnixTime = 1600000000

func TestCreateFund(t *testing.T) {
	other := tlfundtest.NewCondition()

	cases := map[string]struct {
		msg     func(t testing.TB, e *env) *CreateFundMsg
		checkOK bool
		wantErr *errors.Error
	}{
		"success": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "IOV", Amount: 1000, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
		},
		"unlock time in the past": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "IOV", Amount: 1000, UnlockTime: 1, Beneficiary: e.beneficiary.Address()}
			},
		},
		"explicit depositor and source": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{
					Depositor:   e.depositor.Address(),
					Source:      e.associated(t, e.depositor, "IOV"),
					Seed:        "s1",
					Ticker:      "IOV",
					Amount:      5000,
					UnlockTime:  unlockAt,
					Beneficiary: e.beneficiary.Address(),
				}
			},
		},
		"zero amount": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "IOV", UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			wantErr: errors.ErrAmount,
		},
		"empty seed": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Ticker: "IOV", Amount: 1, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			wantErr: errors.ErrEmpty,
		},
		"seed too long": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: strings.Repeat("x", 33), Ticker: "IOV", Amount: 1, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			wantErr: errors.ErrInput,
		},
		"missing beneficiary": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "IOV", Amount: 1, UnlockTime: unlockAt}
			},
			wantErr: errors.ErrInput,
		},
		"negative unlock time": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "IOV", Amount: 1, UnlockTime: -1, Beneficiary: e.beneficiary.Address()}
			},
			wantErr: errors.ErrState,
		},
		"undeclared asset": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "DOGE", Amount: 1, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			checkOK: true,
			wantErr: errors.ErrNotFound,
		},
		"depositor without an account of the asset": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "ETH", Amount: 1, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			checkOK: true,
			wantErr: errors.ErrNotFound,
		},
		"insufficient funds": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Seed: "s1", Ticker: "IOV", Amount: 5001, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			checkOK: true,
			wantErr: errors.ErrInsufficientAmount,
		},
		"depositor did not sign": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Depositor: other.Address(), Seed: "s1", Ticker: "IOV", Amount: 1, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			wantErr: errors.ErrUnauthorized,
		},
		"source owned by someone else": {
			msg: func(t testing.TB, e *env) *CreateFundMsg {
				return &CreateFundMsg{Source: e.associated(t, e.stranger, "IOV"), Seed: "s1", Ticker: "IOV", Amount: 1, UnlockTime: unlockAt, Beneficiary: e.beneficiary.Address()}
			},
			checkOK: true,
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newEnv(t)
			msg := tc.msg(t, e)
			msg.Metadata = &tlfund.Metadata{Schema: 1}
			ctx := e.ctx(unlockAt-100, e.depositor)
			source := e.associated(t, e.depositor, msg.Ticker)
			before := e.balance(t, source)

			wantCheckErr := tc.wantErr
			if tc.checkOK {
				wantCheckErr = nil
			}
			if _, err := e.check(ctx, msg); !wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := e.deliver(ctx, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			fund, derr := FundAddress(e.depositor.Address(), msg.Seed)
			if tc.wantErr != nil {
				assert.Equal(t, before, e.balance(t, source))
				if derr == nil {
					assert.Equal(t, true, errors.ErrNotFound.Is(NewFundBucket().Has(e.db, fund.Address())))
					custody, err := CustodyAddress(fund.Address())
					assert.Nil(t, err)
					_, err = e.control.Account(e.db, custody.Address())
					assert.IsErr(t, errors.ErrNotFound, err)
				}
				return
			}

			assert.Nil(t, derr)
			assert.Equal(t, []byte(fund.Address()), res.Data)
			assert.Equal(t, []common.KVPair{
				{Key: []byte("fund"), Value: []byte(fund.Address().String())},
				{Key: []byte(utils.ActionKey), Value: []byte("timelock/create")},
			}, res.Tags)

			rec := e.fund(t, fund.Address())
			assert.Equal(t, msg.Amount, rec.Amount)
			assert.Equal(t, msg.UnlockTime, rec.UnlockTime)
			assert.Equal(t, e.beneficiary.Address(), rec.Beneficiary)
			assert.Equal(t, e.depositor.Address(), rec.Depositor)
			assert.Equal(t, uint32(fund.Bump), rec.Bump)

			assert.Equal(t, msg.Amount, e.balance(t, rec.Custody))
			assert.Equal(t, before-msg.Amount, e.balance(t, source))

			custody, err := e.control.Account(e.db, rec.Custody)
			assert.Nil(t, err)
			vault, err := VaultAuthority()
			assert.Nil(t, err)
			assert.Equal(t, vault.Address(), custody.Authority)
			assert.Equal(t, "IOV", custody.Ticker)
		})
	}
}

// TestCreateFundFromCoSignerAccount makes sure a co-signer cannot fund an
// escrow that is recorded under the depositor.
func TestCreateFundFromCoSignerAccount(t *testing.T) {
	e := newEnv(t)
	source := e.associated(t, e.stranger, "IOV")
	msg := &CreateFundMsg{
		Metadata:    &tlfund.Metadata{Schema: 1},
		Depositor:   e.depositor.Address(),
		Source:      source,
		Seed:        "s1",
		Ticker:      "IOV",
		Amount:      10,
		UnlockTime:  unlockAt,
		Beneficiary: e.beneficiary.Address(),
	}
	ctx := e.ctx(unlockAt-100, e.depositor, e.stranger)

	_, err := e.check(ctx, msg)
	assert.Nil(t, err)
	_, err = e.deliver(ctx, msg)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Equal(t, uint64(10), e.balance(t, source))
	fund, err := FundAddress(e.depositor.Address(), "s1")
	assert.Nil(t, err)
	assert.IsErr(t, errors.ErrNotFound, NewFundBucket().Has(e.db, fund.Address()))
}

func TestCreateFundDuplicate(t *testing.T) {
	e := newEnv(t)
	first := e.createFund(t, "s1", 1000, unlockAt)
	source := e.associated(t, e.depositor, "IOV")
	assert.Equal(t, uint64(4000), e.balance(t, source))

	msg := &CreateFundMsg{
		Metadata:    &tlfund.Metadata{Schema: 1},
		Seed:        "s1",
		Ticker:      "IOV",
		Amount:      500,
		UnlockTime:  unlockAt + 1000,
		Beneficiary: e.stranger.Address(),
	}
	ctx := e.ctx(unlockAt-100, e.depositor)
	_, err := e.check(ctx, msg)
	assert.IsErr(t, errors.ErrDuplicate, err)
	_, err = e.deliver(ctx, msg)
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Nothing moved and the first fund is untouched.
	assert.Equal(t, uint64(4000), e.balance(t, source))
	rec := e.fund(t, first)
	assert.Equal(t, uint64(1000), rec.Amount)
	assert.Equal(t, uint64(1000), e.balance(t, rec.Custody))
	assert.Equal(t, e.beneficiary.Address(), rec.Beneficiary)

	var funds []FundRecord
	_, err = NewFundBucket().ByIndex(e.db, "depositor", e.depositor.Address(), &funds)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(funds))

	// Another seed of the same depositor is a new fund.
	second := e.createFund(t, "s2", 500, unlockAt)
	assert.Equal(t, false, first.Equals(second))
	assert.Equal(t, uint64(3500), e.balance(t, source))
}

func TestSameSeedDifferentDepositors(t *testing.T) {
	e := newEnv(t)
	first := e.createFund(t, "s1", 10, unlockAt)

	res, err := e.deliver(e.ctx(unlockAt-100, e.stranger), &CreateFundMsg{
		Metadata:    &tlfund.Metadata{Schema: 1},
		Seed:        "s1",
		Ticker:      "IOV",
		Amount:      10,
		UnlockTime:  unlockAt,
		Beneficiary: e.beneficiary.Address(),
	})
	assert.Nil(t, err)
	assert.Equal(t, false, first.Equals(res.Data))
}

func TestRedeemScenario(t *testing.T) {
	e := newEnv(t)
	fund := e.createFund(t, "s1", 1000, unlockAt)
	rec := e.fund(t, fund)
	dest := e.associated(t, e.beneficiary, "IOV")
	msg := &RedeemMsg{Metadata: &tlfund.Metadata{Schema: 1}, FundAddress: fund}

	// Retries before the unlock time never move anything.
	for i := 0; i < 3; i++ {
		ctx := e.ctx(unlockAt-1, e.beneficiary)
		_, err := e.check(ctx, msg)
		assert.IsErr(t, ErrInsufficientRedeemTime, err)
		_, err = e.deliver(ctx, msg)
		assert.IsErr(t, ErrInsufficientRedeemTime, err)
		assert.Equal(t, uint64(1000), e.balance(t, rec.Custody))
		assert.Equal(t, uint64(0), e.balance(t, dest))
	}

	// Unlock is inclusive.
	res, err := e.deliver(e.ctx(unlockAt, e.beneficiary), msg)
	assert.Nil(t, err)
	assert.Equal(t, []byte(dest), res.Data)
	assert.Equal(t, []common.KVPair{
		{Key: []byte("fund"), Value: []byte(fund.String())},
		{Key: []byte(utils.ActionKey), Value: []byte("timelock/redeem")},
	}, res.Tags)
	assert.Equal(t, uint64(0), e.balance(t, rec.Custody))
	assert.Equal(t, uint64(1000), e.balance(t, dest))

	// The record is kept as it was.
	assert.Equal(t, rec, e.fund(t, fund))

	// Custody is drained so a repeated call fails in the transfer.
	_, err = e.deliver(e.ctx(unlockAt+100, e.beneficiary), msg)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
	assert.Equal(t, uint64(0), e.balance(t, rec.Custody))
	assert.Equal(t, uint64(1000), e.balance(t, dest))
}

func TestRedeemUnauthorized(t *testing.T) {
	cases := map[string]struct {
		now     tlfund.UnixTime
		signers func(e *env) []tlfund.Condition
	}{
		"stranger before unlock": {
			now:     unlockAt - 1,
			signers: func(e *env) []tlfund.Condition { return []tlfund.Condition{e.stranger} },
		},
		"stranger after unlock": {
			now:     unlockAt + 1,
			signers: func(e *env) []tlfund.Condition { return []tlfund.Condition{e.stranger} },
		},
		"depositor after unlock": {
			now:     unlockAt + 1,
			signers: func(e *env) []tlfund.Condition { return []tlfund.Condition{e.depositor} },
		},
		"no signature": {
			now:     unlockAt + 1,
			signers: func(e *env) []tlfund.Condition { return nil },
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newEnv(t)
			fund := e.createFund(t, "s1", 1000, unlockAt)
			rec := e.fund(t, fund)
			msg := &RedeemMsg{Metadata: &tlfund.Metadata{Schema: 1}, FundAddress: fund}
			ctx := e.ctx(tc.now, tc.signers(e)...)

			_, err := e.check(ctx, msg)
			assert.IsErr(t, errors.ErrUnauthorized, err)
			_, err = e.deliver(ctx, msg)
			assert.IsErr(t, errors.ErrUnauthorized, err)
			assert.Equal(t, uint64(1000), e.balance(t, rec.Custody))
		})
	}
}

func TestRedeemMissingFund(t *testing.T) {
	e := newEnv(t)
	msg := &RedeemMsg{Metadata: &tlfund.Metadata{Schema: 1}, FundAddress: tlfundtest.RandomAddr(t)}
	_, err := e.deliver(e.ctx(unlockAt, e.beneficiary), msg)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRedeemWithoutBlockTime(t *testing.T) {
	e := newEnv(t)
	fund := e.createFund(t, "s1", 1000, unlockAt)
	ctx := e.auth.SetConditions(context.Background(), e.beneficiary)
	msg := &RedeemMsg{Metadata: &tlfund.Metadata{Schema: 1}, FundAddress: fund}
	_, err := e.deliver(ctx, msg)
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestRedeemToExistingAccount(t *testing.T) {
	e := newEnv(t)
	fund := e.createFund(t, "s1", 1000, unlockAt)
	dest, err := e.control.EnsureAssociated(e.db, e.beneficiary.Address(), "IOV")
	assert.Nil(t, err)

	// Top up the beneficiary account with a regular transfer.
	_, err = e.deliver(e.ctx(unlockAt, e.stranger), &token.SendMsg{
		Metadata:    &tlfund.Metadata{Schema: 1},
		Source:      e.associated(t, e.stranger, "IOV"),
		Destination: dest,
		Amount:      &coin.Coin{Ticker: "IOV", Amount: 5},
	})
	assert.Nil(t, err)

	_, err = e.deliver(e.ctx(unlockAt, e.beneficiary), &RedeemMsg{Metadata: &tlfund.Metadata{Schema: 1}, FundAddress: fund})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1005), e.balance(t, dest))
}

func TestRedeemTamperedState(t *testing.T) {
	cases := map[string]struct {
		tamper func(t *testing.T, e *env, fund tlfund.Address, rec *FundRecord)
	}{
		"custody address replaced": {
			tamper: func(t *testing.T, e *env, fund tlfund.Address, rec *FundRecord) {
				rec.Custody = e.associated(t, e.stranger, "IOV")
				assert.Nil(t, NewFundBucket().Put(e.db, fund, rec))
			},
		},
		"seed replaced": {
			tamper: func(t *testing.T, e *env, fund tlfund.Address, rec *FundRecord) {
				rec.Seed = "s2"
				assert.Nil(t, NewFundBucket().Put(e.db, fund, rec))
			},
		},
		"custody authority replaced": {
			tamper: func(t *testing.T, e *env, fund tlfund.Address, rec *FundRecord) {
				acct, err := e.control.Account(e.db, rec.Custody)
				assert.Nil(t, err)
				acct.Authority = e.stranger.Address()
				assert.Nil(t, token.NewAccountBucket().Put(e.db, rec.Custody, acct))
			},
		},
		"fund asset replaced": {
			tamper: func(t *testing.T, e *env, fund tlfund.Address, rec *FundRecord) {
				rec.Ticker = "ETH"
				assert.Nil(t, NewFundBucket().Put(e.db, fund, rec))
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newEnv(t)
			fund := e.createFund(t, "s1", 1000, unlockAt)
			rec := e.fund(t, fund)
			custody := rec.Custody
			tc.tamper(t, e, fund, rec)

			msg := &RedeemMsg{Metadata: &tlfund.Metadata{Schema: 1}, FundAddress: fund}
			_, err := e.deliver(e.ctx(unlockAt, e.beneficiary), msg)
			assert.IsErr(t, errors.ErrUnauthorized, err)
			assert.Equal(t, uint64(1000), e.balance(t, custody))
		})
	}
}

func TestCustodyCannotBeSpentDirectly(t *testing.T) {
	e := newEnv(t)
	fund := e.createFund(t, "s1", 1000, unlockAt)
	rec := e.fund(t, fund)

	for name, signer := range map[string]tlfund.Condition{
		"depositor":   e.depositor,
		"beneficiary": e.beneficiary,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.deliver(e.ctx(unlockAt+1, signer), &token.SendMsg{
				Metadata:    &tlfund.Metadata{Schema: 1},
				Source:      rec.Custody,
				Destination: e.associated(t, e.depositor, "IOV"),
				Amount:      &coin.Coin{Ticker: "IOV", Amount: 1000},
			})
			assert.IsErr(t, errors.ErrUnauthorized, err)
			assert.Equal(t, uint64(1000), e.balance(t, rec.Custody))
		})
	}
}
