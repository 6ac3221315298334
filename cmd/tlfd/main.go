package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/tlfund"
	tlfd "github.com/iov-one/tlfund/cmd/tlfd/app"
	"github.com/iov-one/tlfund/commands/server"
	"github.com/iov-one/tlfund/x/token"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/cli"
	"github.com/tendermint/tendermint/libs/log"
)

const flagLogLevel = "log_level"

// levelLogger forwards to the logger configured once the flags are parsed.
// Commands are built before that, so they get a pointer to it.
type levelLogger struct {
	log.Logger
}

func main() {
	logger := &levelLogger{Logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:   "tlfd",
		Short: "Time locked fund node",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			allowed, err := log.AllowLevel(viper.GetString(flagLogLevel))
			if err != nil {
				return err
			}
			base := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "tlfd")
			logger.Logger = log.NewFilter(base, allowed)
			return nil
		},
	}
	root.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error or none)")
	root.AddCommand(
		server.InitCmd(tlfd.GenInitOptions, logger),
		server.StartCmd(tlfd.GenerateApp, logger),
		server.GetBlockCmd(),
		server.ValidateCmd(&token.Initializer{}),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(tlfund.Version())
			},
		},
	)

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".tlfd")
	executor := cli.PrepareBaseCmd(root, "TL", defaultHome)
	if err := executor.Execute(); err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}
