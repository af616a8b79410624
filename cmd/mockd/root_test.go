package mockd

import (
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/nipart/nipart-go/ipc/client"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/server"
	"github.com/nipart/nipart-go/ipc/transport/unix"
)

// startStateDaemon runs a stub daemon with the state handlers on a
// throwaway socket and waits until the socket accepts connections
func startStateDaemon(t *testing.T, initial json.RawMessage) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "daemon.sock")
	d := server.NewMockDaemon(
		common.ServerConfig{SocketPath: socketPath, LogLevel: "error"},
		unix.NewUnixDefaultServerTransport(),
	)
	registerStateHandlers(d, initial)

	go func() {
		if err := d.Serve(); err != nil {
			t.Errorf("stub daemon failed: %v", err)
		}
	}()
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("failed to stop stub daemon: %v", err)
		}
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return socketPath
		}
		if time.Now().After(deadline) {
			t.Fatalf("stub daemon never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// TestStateHandlersApplyThenQuery checks that an applied state replaces
// the served state for later queries.
func TestStateHandlersApplyThenQuery(t *testing.T) {
	socketPath := startStateDaemon(t, json.RawMessage(defaultState))

	cli, err := client.New(
		common.ClientConfig{SocketPath: socketPath, TimeoutSecond: 5},
		unix.NewUnixClientTransport(),
	)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { cli.Close() })

	state, err := cli.QueryNetworkState(nil)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if string(state) != defaultState {
		t.Errorf("initial state doesn't match: got %s, expected %s", state, defaultState)
	}

	desired := json.RawMessage(`{"version":1,"interfaces":[{"name":"br0","type":"linux-bridge"}]}`)
	if err := cli.ApplyNetworkState(desired, nil); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	state, err = cli.QueryNetworkState(nil)
	if err != nil {
		t.Fatalf("query after apply failed: %v", err)
	}
	if string(state) != string(desired) {
		t.Errorf("applied state was not served back: got %s, expected %s", state, desired)
	}
}
