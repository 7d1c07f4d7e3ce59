package main

import (
	"github.com/spf13/cobra"
)

var configPath string

// CmdRoot builds the ndndface CLI: a spf13/cobra root command with
// express/register subcommands exercising engine.Face end to end,
// ported from the teacher's tools/pingclient.go cobra command / flag
// binding idiom.
func CmdRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "ndndface",
		Short: "Demo client for the ndndface NDN request/response engine",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (defaults apply if omitted)")
	root.AddCommand(CmdExpress())
	root.AddCommand(CmdRegister())
	return root
}
