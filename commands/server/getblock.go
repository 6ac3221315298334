package server

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/iov-one/tlfund/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

var cdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(cdc)
}

// GetBlockCmd extracts a block from a blockstore.db and outputs it as json.
// It takes the last block unless --height is explicitly specified.
func GetBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "getblock <path to blockstore.db>",
		Short:   "Extract a block from blockstore.db",
		Args:    cobra.ExactArgs(1),
		PreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(args[0])
			if err != nil {
				return err
			}
			defer db.Close()
			return printBlock(cmd.OutOrStdout(), blockchain.NewBlockStore(db), viper.GetInt64(flagHeight))
		},
	}
	cmd.Flags().Int64(flagHeight, 0, "height of the block to extract (default latest)")
	return cmd
}

func openDB(path string) (dbm.DB, error) {
	path = strings.TrimSuffix(filepath.Clean(path), string(filepath.Separator))
	if filepath.Ext(path) != ".db" {
		return nil, errors.Wrap(errors.ErrInput, "database directory must end with .db")
	}
	dir, name := filepath.Split(strings.TrimSuffix(path, ".db"))
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return db, nil
}

func printBlock(w io.Writer, store *blockchain.BlockStore, height int64) error {
	if height == 0 {
		height = store.Height()
	}
	block := store.LoadBlock(height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block for height %d", height)
	}
	js, err := cdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	_, err = fmt.Fprintln(w, string(js))
	return err
}
