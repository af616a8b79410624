package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/nipart/nipart-go/cmd/util"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the nipart daemon is alive",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := util.BindCommandFlags(cmd); err != nil {
			return err
		}

		cli, err := util.NewClient()
		if err != nil {
			return err
		}
		defer cli.Close()

		reply, err := cli.Ping()
		if err != nil {
			return err
		}
		if reply != "pong" {
			return fmt.Errorf("unexpected ping reply %q", reply)
		}

		fmt.Println(color.GreenString("daemon is alive"))
		return nil
	},
}
