package tlfund_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := tlfund.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := tlfund.NewCondition("123", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})

	Convey("nil address is printed as such", t, func() {
		So(tlfund.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestAddressBech32(t *testing.T) {
	addr := tlfund.Address("address0000000000001")
	const enc = "tiov1v9jxgun9wdenqvpsxqcrqvpsxqcrqvp3q87ltx"

	got, err := addr.Bech32("tiov")
	require.NoError(t, err)
	assert.Equal(t, enc, got)

	parsed, err := tlfund.ParseAddress("bech32:" + enc)
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	// A valid bech32 string with a payload that is not an address.
	_, err = tlfund.ParseAddress("bech32:tiov1w3jhxapdwpshjmr0v9jqymqq4y")
	assert.True(t, errors.ErrInput.Is(err))

	_, err = tlfund.ParseAddress("bech32:tiov1v9jxgun9wdenqvpsxqcrqvpsxqcrqvp3q87lta")
	assert.True(t, errors.ErrInput.Is(err), "checksum must be verified")
}

func TestAddressUnmarshalJSON(t *testing.T) {
	// 20 bytes long
	const rawHex = "6164647265737330303030303030303030303031"
	raw := tlfund.Address("address0000000000001")
	bech, err := raw.Bech32("tiov")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr tlfund.Address
	}{
		"default decoding": {
			json:     `"` + rawHex + `"`,
			wantAddr: raw,
		},
		"hex decoding": {
			json:     `"hex:` + rawHex + `"`,
			wantAddr: raw,
		},
		"hex of an invalid length": {
			json:    `"hex:6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: raw,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: tlfund.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a tlfund.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition tlfund.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: tlfund.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got tlfund.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   tlfund.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   tlfund.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func TestConditionValidate(t *testing.T) {
	cases := map[string]struct {
		cond    tlfund.Condition
		wantErr *errors.Error
	}{
		"valid": {
			cond: tlfund.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
		},
		"program derived": {
			cond: tlfund.NewCondition("timelock", "pda", []byte{0, 0xff}),
		},
		"extension too short": {
			cond:    tlfund.NewCondition("x", "ed25519", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"missing data": {
			cond:    tlfund.Condition("sigs/ed25519/"),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.cond.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
