package orm

import (
	"testing"

	"github.com/iov-one/tlfund/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleObjValidate(t *testing.T) {
	refs, err := multiRefFromStrings("fund-1", "fund-2")
	require.NoError(t, err)

	cases := map[string]struct {
		key     []byte
		value   Model
		wantErr *errors.Error
	}{
		"depositor index entry": {
			key:   []byte("depositor"),
			value: refs,
		},
		"missing key": {
			key:     nil,
			value:   refs,
			wantErr: errors.ErrEmpty,
		},
		"missing value": {
			key:     []byte("depositor"),
			wantErr: errors.ErrEmpty,
		},
		"empty reference set": {
			key:     []byte("depositor"),
			value:   &MultiRef{},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			obj := NewSimpleObj(tc.key, tc.value)
			assert.Equal(t, tc.key, obj.Key())
			if err := obj.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestSimpleObjSetKey(t *testing.T) {
	refs, err := multiRefFromStrings("fund-1")
	require.NoError(t, err)

	obj := NewSimpleObj(nil, refs)
	assert.Error(t, obj.Validate())

	obj.SetKey([]byte("beneficiary"))
	assert.NoError(t, obj.Validate())
	assert.Equal(t, []byte("beneficiary"), obj.Key())
	assert.EqualValues(t, refs, obj.Value())
}
