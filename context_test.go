package tlfund

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// test height - uninitialized
	val, ok := GetHeight(ctx)
	assert.Equal(t, int64(0), val)
	assert.False(t, ok)
	// set
	ctx = WithHeight(ctx, 7)
	val, ok = GetHeight(ctx)
	assert.Equal(t, int64(7), val)
	assert.True(t, ok)
	// no reset
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	// changing the info, should modify the logger, but not the height
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	val, _ = GetHeight(ctx)
	assert.Equal(t, int64(7), val)

	// chain id MUST be set exactly once
	assert.Panics(t, func() { GetChainID(ctx) })
	ctx2 = WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", GetChainID(ctx2))
	// don't try a second time
	assert.Panics(t, func() { WithChainID(ctx2, "my-chain") })

	header := abci.Header{ChainID: "my-chain", Height: 7}
	_, ok = GetHeader(ctx)
	assert.False(t, ok)
	ctx = WithHeader(ctx, header)
	got, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, header, got)
	assert.Panics(t, func() { WithHeader(ctx, header) })
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()

	_, err := BlockTime(bg)
	assert.Error(t, err)

	_, err = BlockTime(WithBlockTime(bg, time.Time{}))
	assert.Error(t, err)

	now := time.Unix(1700000000, 0)
	ctx := WithBlockTime(bg, now)
	got, err := BlockTime(ctx)
	assert.NoError(t, err)
	assert.True(t, now.Equal(got))
	assert.Panics(t, func() { WithBlockTime(ctx, now) })

	// expiration is inclusive of the current time
	assert.True(t, IsExpired(ctx, AsUnixTime(now)))
	assert.True(t, IsExpired(ctx, AsUnixTime(now)-1))
	assert.False(t, IsExpired(ctx, AsUnixTime(now)+1))
	assert.Panics(t, func() { IsExpired(bg, 1) })
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"wish-YOU-88", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidChainID(tc.chainID), tc.chainID)
	}
}
