package timelock

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/orm"
	"github.com/iov-one/tlfund/x"
)

const (
	// ProgramName owns every identity derived by this package.
	ProgramName = "timelock"

	fundSeed           = "fund"
	vaultAuthoritySeed = "token-vault-authority"
)

// FundAddress derives the fund identity from the depositor and the seed.
func FundAddress(depositor tlfund.Address, seed string) (tlfund.ProgramAddress, error) {
	if err := depositor.Validate(); err != nil {
		return tlfund.ProgramAddress{}, errors.Wrap(err, "depositor")
	}
	if err := validateSeed(seed); err != nil {
		return tlfund.ProgramAddress{}, err
	}
	return tlfund.DeriveAddress(ProgramName, []byte(fundSeed), depositor, []byte(seed))
}

// CustodyAddress derives the identity of the account that holds the units
// locked by the fund.
func CustodyAddress(fund tlfund.Address) (tlfund.ProgramAddress, error) {
	if err := fund.Validate(); err != nil {
		return tlfund.ProgramAddress{}, errors.Wrap(err, "fund")
	}
	return tlfund.DeriveAddress(ProgramName, fund)
}

// VaultAuthority derives the identity that controls all custody accounts.
func VaultAuthority() (tlfund.ProgramAddress, error) {
	return tlfund.DeriveAddress(ProgramName, []byte(vaultAuthoritySeed))
}

func validateSeed(seed string) error {
	if len(seed) == 0 {
		return errors.Wrap(errors.ErrEmpty, "seed")
	}
	if len(seed) > tlfund.MaxSeedLen {
		return errors.Wrapf(errors.ErrInput, "seed longer than %d bytes", tlfund.MaxSeedLen)
	}
	return nil
}

// vaultSigner authenticates the vault authority. It is built from the vault
// seeds and bump, so only code in this package can act as the vault.
type vaultSigner struct {
	pda tlfund.ProgramAddress
}

var _ x.Authenticator = vaultSigner{}

func signAsVault(bump uint8) (vaultSigner, error) {
	pda, err := tlfund.CreateProgramAddress(ProgramName, bump, []byte(vaultAuthoritySeed))
	if err != nil {
		return vaultSigner{}, errors.Wrap(err, "vault authority")
	}
	return vaultSigner{pda: pda}, nil
}

func (v vaultSigner) GetConditions(tlfund.Context) []tlfund.Condition {
	return []tlfund.Condition{v.pda.Condition()}
}

func (v vaultSigner) HasAddress(_ tlfund.Context, addr tlfund.Address) bool {
	return v.pda.Address().Equals(addr)
}

var _ orm.Model = (*FundRecord)(nil)

// Validate ensures the fund record is valid.
func (f *FundRecord) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", f.Metadata.Validate())
	errs = errors.AppendField(errs, "Depositor", f.Depositor.Validate())
	errs = errors.AppendField(errs, "Seed", validateSeed(f.Seed))
	if f.Bump > 255 {
		errs = errors.AppendField(errs, "Bump", errors.ErrInput)
	}
	if !coin.IsCC(f.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	errs = errors.AppendField(errs, "Custody", f.Custody.Validate())
	errs = errors.AppendField(errs, "Beneficiary", f.Beneficiary.Validate())
	if f.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "UnlockTime", f.UnlockTime.Validate())
	return errs
}

// Coin returns the locked amount as a coin of the fund asset.
func (f *FundRecord) Coin() coin.Coin {
	return coin.NewCoin(f.Amount, f.Ticker)
}

// Status computes the lifecycle state of the fund. A fund with an empty
// custody account has been redeemed. Otherwise it is unlocked once now
// reaches the unlock time.
func Status(f *FundRecord, custodyBalance uint64, now tlfund.UnixTime) FundStatus {
	switch {
	case custodyBalance == 0:
		return FundStatusRedeemed
	case now < f.UnlockTime:
		return FundStatusLocked
	default:
		return FundStatusUnlocked
	}
}

// NewFundBucket returns a bucket storing funds under their addresses,
// indexed by depositor and beneficiary.
func NewFundBucket() orm.ModelBucket {
	return orm.NewModelBucket("fund", &FundRecord{},
		orm.WithIndex("depositor", depositorIndex, false),
		orm.WithIndex("beneficiary", beneficiaryIndex, false),
	)
}

func depositorIndex(obj orm.Object) ([]byte, error) {
	f, err := asFund(obj)
	if err != nil {
		return nil, err
	}
	return f.Depositor, nil
}

func beneficiaryIndex(obj orm.Object) ([]byte, error) {
	f, err := asFund(obj)
	if err != nil {
		return nil, err
	}
	return f.Beneficiary, nil
}

func asFund(obj orm.Object) (*FundRecord, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	f, ok := obj.Value().(*FundRecord)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only take index of FundRecord, got %T", obj.Value())
	}
	return f, nil
}
