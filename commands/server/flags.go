package server

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagBind   = "bind"
	flagDebug  = "debug"
	flagHeight = "height"
)

// bindFlags makes the command flags readable through viper, so every value
// can also be provided by the environment or the config file.
func bindFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}
