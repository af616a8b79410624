package mockd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/nipart/nipart-go/cmd/util"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/server"
	"github.com/nipart/nipart-go/ipc/transport/unix"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// defaultState is served until something gets applied
const defaultState = `{"version":1,"interfaces":[]}`

var (
	// MockdCmd runs a stub daemon serving canned network state
	MockdCmd = &cobra.Command{
		Use:   "mockd",
		Short: "Run a stub nipart daemon for testing",
		Long: util.WrapString("Run a stub daemon that speaks the real IPC protocol " +
			"but serves canned network state instead of configuring anything. " +
			"Applied state replaces the served state for later queries."),
		RunE: runMockd,
	}
)

func init() {
	key := "state-file"
	MockdCmd.Flags().String(key, "", util.WrapString("YAML or JSON file with the network state to serve initially"))
}

func runMockd(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	common.InitLoggers(viper.GetString("log-level"))

	config := common.ServerConfig{
		SocketPath:    viper.GetString("socket"),
		TimeoutSecond: viper.GetInt("timeout"),
		LogLevel:      viper.GetString("log-level"),
	}

	state := json.RawMessage(defaultState)
	if path := viper.GetString("state-file"); path != "" {
		loaded, err := loadStateFile(path)
		if err != nil {
			return err
		}
		state = loaded
	}

	d := server.NewMockDaemon(config, unix.NewUnixDefaultServerTransport())
	registerStateHandlers(d, state)

	// Shut down cleanly on interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		d.Close()
	}()

	fmt.Println(color.CyanString("stub daemon listening on %s", config.Endpoint()))
	return d.Serve()
}

// registerStateHandlers wires query and apply against a shared in-memory state
func registerStateHandlers(d *server.MockDaemon, initial json.RawMessage) {
	var mu sync.Mutex
	state := initial

	d.RegisterHandler(common.KindQueryNetworkState, func(json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
		mu.Lock()
		defer mu.Unlock()
		logs := []common.LogEntry{
			{Source: "mockd", Level: common.LogLevelDebug, Message: "serving canned network state"},
		}
		return logs, state, nil
	})

	d.RegisterHandler(common.KindApplyNetworkState, func(data json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
		// data is {"apply-network-state": [desired_state, options]};
		// keep the state, ignore the options
		var inner map[string][2]json.RawMessage
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, nil, &common.ValueError{IPCError: common.IPCError{
				Kind: common.ErrKindInvalidArgument,
				Msg:  fmt.Sprintf("malformed apply payload: %v", err),
			}}
		}
		pair, ok := inner[common.KindApplyNetworkState]
		if !ok {
			return nil, nil, &common.ValueError{IPCError: common.IPCError{
				Kind: common.ErrKindInvalidArgument,
				Msg:  "apply payload is missing the state/options pair",
			}}
		}

		mu.Lock()
		state = pair[0]
		mu.Unlock()

		logs := []common.LogEntry{
			{Source: "mockd", Level: common.LogLevelInfo, Message: "desired state stored"},
			{Source: "mockd", Level: common.LogLevelInfo, Message: "verification skipped, nothing was configured"},
		}
		return logs, json.RawMessage("null"), nil
	})
}

// loadStateFile reads a YAML or JSON state document and normalizes it to JSON
func loadStateFile(path string) (json.RawMessage, error) {
	raw, err := os.ReadFile(path)
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
