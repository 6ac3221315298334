package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/iov-one/tlfund/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/libs/cli"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/p2p"
	"github.com/tendermint/tendermint/privval"
	tmtypes "github.com/tendermint/tendermint/types"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will initialize all files for tendermint,
// along with proper app_state.
func InitCmd(gen GenOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init [ticker] [amount]",
		Short: "Initialize genesis files",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return InitFiles(logger, viper.GetString(cli.HomeFlag), gen, args)
		},
	}
}

// InitFiles creates the validator key, the node key and the genesis file
// under the home directory. Existing files are kept. The application state
// produced by gen is always written into the genesis file.
func InitFiles(logger log.Logger, home string, gen GenOptions, args []string) error {
	config := cfg.DefaultConfig()
	config.SetRoot(home)
	cfg.EnsureRoot(home)

	pv := privval.LoadOrGenFilePV(config.PrivValidatorKeyFile(), config.PrivValidatorStateFile())
	if _, err := p2p.LoadOrGenNodeKey(config.NodeKeyFile()); err != nil {
		return errors.Wrap(errors.ErrState, fmt.Sprintf("node key: %s", err))
	}

	genFile := config.GenesisFile()
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
	} else {
		genDoc := tmtypes.GenesisDoc{
			ChainID:     fmt.Sprintf("test-chain-%v", cmn.RandStr(6)),
			GenesisTime: time.Now().UTC(),
			Validators: []tmtypes.GenesisValidator{{
				Address: pv.GetPubKey().Address(),
				PubKey:  pv.GetPubKey(),
				Power:   10,
			}},
		}
		if err := genDoc.SaveAs(genFile); err != nil {
			return errors.Wrap(errors.ErrState, fmt.Sprintf("save genesis: %s", err))
		}
		logger.Info("Generated genesis file", "path", genFile)
	}

	if gen == nil {
		return nil
	}
	options, err := gen(args)
	if err != nil {
		return err
	}
	return addGenesisOptions(genFile, options)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, fmt.Sprintf("cannot parse %s: %s", filename, err))
	}
	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
