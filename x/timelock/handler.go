package timelock

import (
	"time"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/orm"
	"github.com/iov-one/tlfund/x"
	"github.com/iov-one/tlfund/x/token"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createFundCost int64 = 300
	redeemCost     int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tlfund.Registry, auth x.Authenticator, control token.Controller) {
	bucket := NewFundBucket()
	r.Handle(CreateFundMsg{}.Path(), NewCreateFundHandler(auth, bucket, control))
	r.Handle(RedeemMsg{}.Path(), NewRedeemHandler(auth, bucket, control))
}

// Clock returns the time fund status queries are computed against.
type Clock func() (time.Time, error)

// RegisterQuery will register funds as "/funds" and the fund status as
// "/fundstatus".
func RegisterQuery(qr tlfund.QueryRouter, control token.Controller, clock Clock) {
	bucket := NewFundBucket()
	bucket.Register("funds", qr)
	qr.Register("/fundstatus", tlfund.QueryFunc(func(db tlfund.ReadOnlyKVStore, mod string, data []byte) ([]tlfund.Model, error) {
		return queryStatus(db, bucket, control, clock, mod, data)
	}))
}

func queryStatus(db tlfund.ReadOnlyKVStore, bucket orm.ModelBucket, control token.Controller, clock Clock, mod string, addr []byte) ([]tlfund.Model, error) {
	if mod != tlfund.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	var fund FundRecord
	switch err := bucket.One(db, addr, &fund); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	balance, err := control.Balance(db, fund.Custody)
	if err != nil {
		return nil, errors.Wrap(err, "custody")
	}
	now, err := clock()
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	view := FundView{
		Fund:           &fund,
		CustodyBalance: balance.Amount,
		Status:         Status(&fund, balance.Amount, tlfund.AsUnixTime(now)),
	}
	raw, err := tlfund.Marshal(&view)
	if err != nil {
		return nil, err
	}
	return []tlfund.Model{tlfund.Pair(addr, raw)}, nil
}

// CreateFundHandler locks funds in a newly created custody account.
type CreateFundHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	control token.Controller
}

var _ tlfund.Handler = CreateFundHandler{}

// NewCreateFundHandler creates a handler for CreateFundMsg
func NewCreateFundHandler(auth x.Authenticator, bucket orm.ModelBucket, control token.Controller) CreateFundHandler {
	return CreateFundHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateFundHandler) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tlfund.CheckResult{GasAllocated: createFundCost}, nil
}

// Deliver creates the custody account, moves the amount into it and stores
// the fund. The fund address is returned as the result data.
func (h CreateFundHandler) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	msg, depositor, fund, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	fundAddr := fund.Address()

	source, err := h.depositorSource(db, msg, depositor)
	if err != nil {
		return nil, err
	}

	custody, err := CustodyAddress(fundAddr)
	if err != nil {
		return nil, err
	}
	vault, err := VaultAuthority()
	if err != nil {
		return nil, err
	}
	if _, err := h.control.CreateAccount(db, custody.Address(), msg.Ticker, vault.Address()); err != nil {
		return nil, errors.Wrap(err, "custody")
	}

	amount := coin.NewCoin(msg.Amount, msg.Ticker)
	if err := h.control.Transfer(ctx, db, h.auth, source, custody.Address(), amount); err != nil {
		return nil, err
	}

	record := &FundRecord{
		Metadata:    &tlfund.Metadata{Schema: 1},
		Depositor:   depositor,
		Seed:        msg.Seed,
		Bump:        uint32(fund.Bump),
		Ticker:      msg.Ticker,
		Custody:     custody.Address(),
		Beneficiary: msg.Beneficiary,
		Amount:      msg.Amount,
		UnlockTime:  msg.UnlockTime,
	}
	if err := h.bucket.Put(db, fundAddr, record); err != nil {
		return nil, errors.Wrap(err, "cannot store fund")
	}

	tlfund.GetLogger(ctx).Info("fund created",
		"fund", fundAddr, "beneficiary", msg.Beneficiary, "amount", amount.String(), "unlock", msg.UnlockTime)
	return &tlfund.DeliverResult{
		Data: fundAddr,
		Tags: []common.KVPair{fundTag(fundAddr)},
	}, nil
}

// validate returns the message, the depositor and the fund identity. It
// fails when a fund already exists under the derived address.
func (h CreateFundHandler) validate(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*CreateFundMsg, tlfund.Address, tlfund.ProgramAddress, error) {
	var msg CreateFundMsg
	if err := tlfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, tlfund.ProgramAddress{}, errors.Wrap(err, "load msg")
	}
	depositor, err := x.AnySigner(ctx, h.auth, msg.Depositor)
	if err != nil {
		return nil, nil, tlfund.ProgramAddress{}, errors.Wrap(err, "depositor")
	}
	fund, err := FundAddress(depositor, msg.Seed)
	if err != nil {
		return nil, nil, tlfund.ProgramAddress{}, err
	}
	switch err := h.bucket.Has(db, fund.Address()); {
	case err == nil:
		return nil, nil, tlfund.ProgramAddress{}, errors.Wrapf(errors.ErrDuplicate, "fund %s", fund.Address())
	case !errors.ErrNotFound.Is(err):
		return nil, nil, tlfund.ProgramAddress{}, err
	}
	return &msg, depositor, fund, nil
}

// depositorSource returns the account the deposit is taken from. It must be
// an account of the depositor, even when other signers could authorize a
// transfer from it.
func (h CreateFundHandler) depositorSource(db tlfund.KVStore, msg *CreateFundMsg, depositor tlfund.Address) (tlfund.Address, error) {
	source := msg.Source
	if source == nil {
		addr, err := token.AssociatedAddress(depositor, msg.Ticker)
		if err != nil {
			return nil, err
		}
		source = addr
	}
	acct, err := h.control.Account(db, source)
	if err != nil {
		return nil, errors.Wrap(err, "source")
	}
	if !acct.Authority.Equals(depositor) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "source %s is not controlled by the depositor", source)
	}
	return source, nil
}

// RedeemHandler releases unlocked funds to their beneficiary.
type RedeemHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	control token.Controller
}

var _ tlfund.Handler = RedeemHandler{}

// NewRedeemHandler creates a handler for RedeemMsg
func NewRedeemHandler(auth x.Authenticator, bucket orm.ModelBucket, control token.Controller) RedeemHandler {
	return RedeemHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
	}
}

// Check verifies the beneficiary signature and the unlock time.
func (h RedeemHandler) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tlfund.CheckResult{GasAllocated: redeemCost}, nil
}

// Deliver moves the whole fund from custody to the associated account of
// the beneficiary. The fund record is left untouched.
func (h RedeemHandler) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*tlfund.DeliverResult, error) {
	msg, fund, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	signer, err := h.verifyCustody(db, msg.FundAddress, fund)
	if err != nil {
		return nil, err
	}
	dest, err := h.control.EnsureAssociated(db, fund.Beneficiary, fund.Ticker)
	if err != nil {
		return nil, errors.Wrap(err, "beneficiary account")
	}
	if err := h.control.Transfer(ctx, db, signer, fund.Custody, dest, fund.Coin()); err != nil {
		return nil, err
	}

	tlfund.GetLogger(ctx).Info("fund redeemed",
		"fund", msg.FundAddress, "beneficiary", fund.Beneficiary, "amount", fund.Coin().String())
	return &tlfund.DeliverResult{
		Data: dest,
		Tags: []common.KVPair{fundTag(msg.FundAddress)},
	}, nil
}

func (h RedeemHandler) validate(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx) (*RedeemMsg, *FundRecord, error) {
	var msg RedeemMsg
	if err := tlfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var fund FundRecord
	if err := h.bucket.One(db, msg.FundAddress, &fund); err != nil {
		return nil, nil, errors.Wrapf(err, "fund %s", msg.FundAddress)
	}
	if !h.auth.HasAddress(ctx, fund.Beneficiary) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "beneficiary signature missing")
	}
	now, err := tlfund.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	if tlfund.AsUnixTime(now) < fund.UnlockTime {
		return nil, nil, errors.Wrapf(ErrInsufficientRedeemTime, "unlocks at %s", fund.UnlockTime)
	}
	return &msg, &fund, nil
}

// verifyCustody re-derives the fund, custody and vault identities and
// checks them against the stored state. On success it returns the signer
// that authorizes transfers out of the custody account.
func (h RedeemHandler) verifyCustody(db tlfund.KVStore, fundAddr tlfund.Address, fund *FundRecord) (vaultSigner, error) {
	derived, err := tlfund.CreateProgramAddress(ProgramName, uint8(fund.Bump), []byte(fundSeed), fund.Depositor, []byte(fund.Seed))
	if err != nil || !derived.Address().Equals(fundAddr) {
		return vaultSigner{}, errors.Wrap(errors.ErrUnauthorized, "fund address mismatch")
	}
	custody, err := CustodyAddress(fundAddr)
	if err != nil {
		return vaultSigner{}, err
	}
	if !custody.Address().Equals(fund.Custody) {
		return vaultSigner{}, errors.Wrap(errors.ErrUnauthorized, "custody address mismatch")
	}
	vault, err := VaultAuthority()
	if err != nil {
		return vaultSigner{}, err
	}
	acct, err := h.control.Account(db, fund.Custody)
	if err != nil {
		return vaultSigner{}, errors.Wrap(err, "custody")
	}
	if acct.Ticker != fund.Ticker {
		return vaultSigner{}, errors.Wrap(errors.ErrUnauthorized, "custody asset mismatch")
	}
	if !acct.Authority.Equals(vault.Address()) {
		return vaultSigner{}, errors.Wrap(errors.ErrUnauthorized, "custody authority mismatch")
	}
	return signAsVault(vault.Bump)
}

func fundTag(addr tlfund.Address) common.KVPair {
	return common.KVPair{Key: []byte("fund"), Value: []byte(addr.String())}
}
