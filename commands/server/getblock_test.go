package server

import (
	"bytes"
	"testing"

	"github.com/iov-one/tlfund/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func TestOpenDBRequiresExtension(t *testing.T) {
	_, err := openDB("/tmp/blockstore")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestPrintBlockMissing(t *testing.T) {
	store := blockchain.NewBlockStore(dbm.NewMemDB())
	var buf bytes.Buffer
	err := printBlock(&buf, store, 3)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 0, buf.Len())
}
