package cmd

import (
	"fmt"
	"os"

	"github.com/nipart/nipart-go/cmd/mockd"
	"github.com/nipart/nipart-go/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "npt",
		Short: "nipart network state client",
		Long: fmt.Sprintf(`npt (v%s)

Command line client for the nipart network state daemon. Queries and
applies declarative network state over the daemon's local socket.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of npt",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("npt v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common daemon connection flags
	util.SetupIPCClientFlags(RootCmd)

	// Add Commands
	RootCmd.AddCommand(pingCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(perfCmd)
	RootCmd.AddCommand(mockd.MockdCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
