package token

import (
	"testing"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/tlfundtest"
	"github.com/iov-one/tlfund/tlfundtest/assert"
)

func TestAssetValidate(t *testing.T) {
	cases := map[string]struct {
		asset   Asset
		wantErr *errors.Error
	}{
		"valid": {
			asset: Asset{Metadata: &tlfund.Metadata{Schema: 1}, Name: "Some Token", Decimals: 9},
		},
		"missing metadata": {
			asset:   Asset{Name: "Some Token"},
			wantErr: errors.ErrMetadata,
		},
		"name too short": {
			asset:   Asset{Metadata: &tlfund.Metadata{Schema: 1}, Name: "x"},
			wantErr: errors.ErrInput,
		},
		"too many decimals": {
			asset:   Asset{Metadata: &tlfund.Metadata{Schema: 1}, Name: "Some Token", Decimals: 19},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.asset.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestAccountValidate(t *testing.T) {
	authority := tlfundtest.NewCondition().Address()

	cases := map[string]struct {
		acct    *Account
		wantErr *errors.Error
	}{
		"valid": {
			acct: NewAccount("IOV", authority),
		},
		"valid with balance": {
			acct: &Account{Metadata: &tlfund.Metadata{Schema: 1}, Ticker: "ETH", Authority: authority, Balance: 42},
		},
		"invalid ticker": {
			acct:    NewAccount("iov", authority),
			wantErr: errors.ErrCurrency,
		},
		"missing authority": {
			acct:    NewAccount("IOV", nil),
			wantErr: errors.ErrInput,
		},
		"missing metadata": {
			acct:    &Account{Ticker: "IOV", Authority: authority},
			wantErr: errors.ErrMetadata,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.acct.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestAssociatedAddress(t *testing.T) {
	alice := tlfundtest.NewCondition().Address()
	bob := tlfundtest.NewCondition().Address()

	a1, err := AssociatedAddress(alice, "IOV")
	assert.Nil(t, err)
	a2, err := AssociatedAddress(alice, "IOV")
	assert.Nil(t, err)
	assert.Equal(t, a1, a2)
	assert.Nil(t, a1.Validate())

	other, err := AssociatedAddress(alice, "ETH")
	assert.Nil(t, err)
	if other.Equals(a1) {
		t.Fatal("different assets must not share an account")
	}
	b1, err := AssociatedAddress(bob, "IOV")
	assert.Nil(t, err)
	if b1.Equals(a1) {
		t.Fatal("different owners must not share an account")
	}
	if a1.Equals(alice) {
		t.Fatal("associated account must not be the owner address")
	}

	_, err = AssociatedAddress(nil, "IOV")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = AssociatedAddress(alice, "x")
	assert.IsErr(t, errors.ErrCurrency, err)
}
