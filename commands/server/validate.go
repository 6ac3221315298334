package server

import (
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/app"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/store"
	"github.com/spf13/cobra"
)

// ValidateCmd loads every given genesis file into a throw away store.
func ValidateCmd(ini tlfund.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Check that genesis files can initialize the application",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ValidateGenesis(ini, args)
		},
	}
}

// ValidateGenesis returns the first genesis file that fails to initialize
// the application state.
func ValidateGenesis(ini tlfund.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini tlfund.Initializer, genesisPath string) error {
	genesis, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	if !tlfund.IsValidChainID(genesis.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", genesis.ChainID)
	}
	if err := ini.FromGenesis(genesis.AppState, store.MemStore()); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
