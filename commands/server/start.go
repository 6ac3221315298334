package server

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/cli"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd runs the ABCI server. Tendermint connects to it over a socket.
func StartCmd(gen AppGenerator, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "start",
		Short:   "Run the abci server",
		PreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := viper.GetString(cli.HomeFlag)
			return start(gen, logger, home, viper.GetString(flagBind), viper.GetBool(flagDebug))
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	return cmd
}

func start(gen AppGenerator, logger log.Logger, home, addr string, debug bool) error {
	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return fmt.Errorf("cannot create listener: %v", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return fmt.Errorf("cannot start server: %v", err)
	}

	// Wait forever
	cmn.TrapSignal(func() {
		svr.Stop()
	})
	return nil
}
