package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/nipart/nipart-go/cmd/util"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var applyCmd = &cobra.Command{
	Use:   "apply <state-file>",
	Short: "Apply network state to the daemon",
	Long: "Apply the desired network state from a YAML or JSON file. " +
		"Use - to read the state from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	key := "no-verify"
	applyCmd.Flags().Bool(key, false, util.WrapString("Skip post-apply verification of the desired state"))
	key = "schema-version"
	applyCmd.Flags().Uint(key, common.LatestSchemaVersion, util.WrapString("Network state schema version of the desired state"))
}

func runApply(cmd *cobra.Command, args []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	desiredState, err := readStateFile(args[0])
	if err != nil {
		return err
	}

	cli, err := util.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	opt := common.ApplyOption{
		Version:  viper.GetUint("schema-version"),
		NoVerify: viper.GetBool("no-verify"),
	}
	if err := cli.ApplyNetworkState(desiredState, &opt); err != nil {
		return err
	}

	fmt.Println(color.GreenString("network state applied"))
	return nil
}

// readStateFile loads a desired state document and normalizes it to JSON.
// YAML is accepted because it is the conventional authoring format for
// network state; JSON is a subset of YAML, so one decoder covers both.
func readStateFile(path string) (json.RawMessage, error) {
	var raw []byte
	var err error

	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var decoded interface{}
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}

	state, err := json.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize state file %s: %w", path, err)
	}
	return state, nil
}
