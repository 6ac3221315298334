package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Errors are declared once so that the results can be compared by
	// identity.
	var (
		zeroAmountErr    = Field("Amount", ErrAmount, "must be positive")
		tickerErr        = Field("Amount", ErrCurrency, "unknown ticker %q", "BTC")
		emptySeedErr     = Field("Seed", ErrEmpty, "required")
		releaseTimeErr   = Field("ReleaseTime", ErrExpired, "")
		createFundMsgErr = Field("Msg", Append(tickerErr, Append(emptySeedErr, ErrUnauthorized)), "invalid")
		rewrappedSeedErr = Field("Seed", emptySeedErr, "outer")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"nil error": {
			err:   nil,
			field: "Amount",
			want:  nil,
		},
		"error without a field": {
			err:   ErrUnauthorized,
			field: "Amount",
			want:  nil,
		},
		"single field error": {
			err:   zeroAmountErr,
			field: "Amount",
			want:  []error{zeroAmountErr},
		},
		"other field": {
			err:   zeroAmountErr,
			field: "Seed",
			want:  nil,
		},
		"collected field errors": {
			err:   AppendField(AppendField(zeroAmountErr, "ReleaseTime", ErrExpired), "Source", nil),
			field: "ReleaseTime",
			want:  []error{Field("ReleaseTime", ErrExpired, "")},
		},
		"two errors of the same field": {
			err:   Append(zeroAmountErr, emptySeedErr, tickerErr),
			field: "Amount",
			want:  []error{zeroAmountErr, tickerErr},
		},
		"outer field matches as a whole": {
			err:   createFundMsgErr,
			field: "Msg",
			want:  []error{createFundMsgErr},
		},
		"nested field inside a multi error": {
			err:   Wrap(createFundMsgErr, "deliver"),
			field: "Seed",
			want:  []error{emptySeedErr},
		},
		"wrapped field error": {
			err:   Wrap(Wrapf(releaseTimeErr, "block %d", 3), "deliver"),
			field: "ReleaseTime",
			want:  []error{releaseTimeErr},
		},
		"same field wrapped twice returns the outer one": {
			err:   rewrappedSeedErr,
			field: "Seed",
			want:  []error{rewrappedSeedErr},
		},
		"field inside another field": {
			err:   Field("Msg", Field("Fund", tickerErr, ""), ""),
			field: "Amount",
			want:  []error{tickerErr},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if tc.want == nil {
				if len(got) != 0 {
					t.Fatalf("want no errors, got %v", got)
				}
				return
			}
			if len(got) != len(tc.want) {
				t.Fatalf("want %d errors, got %v", len(tc.want), got)
			}
			for i := range got {
				if got[i].Error() != tc.want[i].Error() {
					t.Errorf("%d: want %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestFieldNil(t *testing.T) {
	if err := Field("Amount", nil, "ignored"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := AppendField(nil, "Amount", nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestFieldMessage(t *testing.T) {
	err := Field("Amount", ErrCurrency, "unknown ticker %q", "BTC")
	const want = `field "Amount": unknown ticker "BTC": currency mismatch`
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if !ErrCurrency.Is(err) {
		t.Fatal("field error must keep its kind")
	}
	if !reflect.DeepEqual(FieldErrors(err, "Amount"), []error{err}) {
		t.Fatal("field error not found by its name")
	}
}
