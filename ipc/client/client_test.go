package client

import (
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/server"
	"github.com/nipart/nipart-go/ipc/transport/unix"
)

// --------------------------------------------------------------------------
// Test Helpers
// --------------------------------------------------------------------------

// startDaemon runs a stub daemon on a throwaway socket and waits until
// the socket accepts connections
func startDaemon(t *testing.T, register func(d *server.MockDaemon)) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "daemon.sock")
	d := server.NewMockDaemon(
		common.ServerConfig{SocketPath: socketPath, LogLevel: "error"},
		unix.NewUnixDefaultServerTransport(),
	)
	if register != nil {
		register(d)
	}

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

func newTestClient(t *testing.T, socketPath string, sink common.LogSink) *Client {
	t.Helper()

	c, err := New(
		common.ClientConfig{SocketPath: socketPath, TimeoutSecond: 5},
		unix.NewUnixClientTransportWithSink(sink),
	)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestClientPing(t *testing.T) {
	socketPath := startDaemon(t, nil)
	c := newTestClient(t, socketPath, nil)

	reply, err := c.Ping()
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if reply != "pong" {
		t.Errorf("reply doesn't match: got %q", reply)
	}
}

func TestClientQueryNetworkState(t *testing.T) {
	state := json.RawMessage(`{"interfaces":[{"name":"eth0","state":"up"}]}`)
	logs := []common.LogEntry{
		{Source: "nispor", Level: common.LogLevelDebug, Message: "querying kernel"},
		{Source: "nipartd", Level: common.LogLevelInfo, Message: "state assembled"},
	}

	var gotOpt common.QueryOption
	socketPath := startDaemon(t, func(d *server.MockDaemon) {
		d.RegisterHandler(common.KindQueryNetworkState,
			func(data json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
				var req map[string]common.QueryOption
				if err := json.Unmarshal(data, &req); err != nil {
					return nil, nil, err
				}
				gotOpt = req[common.KindQueryNetworkState]
				return logs, state, nil
			})
	})

	var gotLogs []common.LogEntry
	sink := func(entry common.LogEntry) error {
		gotLogs = append(gotLogs, entry)
		return nil
	}
	c := newTestClient(t, socketPath, sink)

	opt := common.SavedQueryOption()
	got, err := c.QueryNetworkState(&opt)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if string(got) != string(state) {
		t.Errorf("state doesn't match: got %s", got)
	}
	if gotOpt != opt {
		t.Errorf("daemon saw option %+v, expected %+v", gotOpt, opt)
	}
	if !reflect.DeepEqual(gotLogs, logs) {
		t.Errorf("log entries don't match:\nGot: %v\nExpected: %v", gotLogs, logs)
	}
}

func TestClientApplyNetworkState(t *testing.T) {
	desired := json.RawMessage(`{"interfaces":[{"name":"br0","type":"linux-bridge"}]}`)

	var gotState json.RawMessage
	var gotOpt common.ApplyOption
	socketPath := startDaemon(t, func(d *server.MockDaemon) {
		d.RegisterHandler(common.KindApplyNetworkState,
			func(data json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
				var req map[string][2]json.RawMessage
				if err := json.Unmarshal(data, &req); err != nil {
					return nil, nil, err
				}
				pair := req[common.KindApplyNetworkState]
				gotState = pair[0]
				if err := json.Unmarshal(pair[1], &gotOpt); err != nil {
					return nil, nil, err
				}
				return nil, json.RawMessage(`null`), nil
			})
	})
	c := newTestClient(t, socketPath, nil)

	opt := common.NewApplyOption(common.LatestSchemaVersion, false)
	if err := c.ApplyNetworkState(desired, &opt); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if string(gotState) != string(desired) {
		t.Errorf("daemon saw state %s, expected %s", gotState, desired)
	}
	expected := common.ApplyOption{Version: common.LatestSchemaVersion, NoVerify: true}
	if gotOpt != expected {
		t.Errorf("daemon saw option %+v, expected %+v", gotOpt, expected)
	}
}

func TestClientErrorPropagation(t *testing.T) {
	socketPath := startDaemon(t, func(d *server.MockDaemon) {
		d.RegisterHandler(common.KindApplyNetworkState,
			func(json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
				return nil, nil, &common.ValueError{IPCError: common.IPCError{
					Kind: common.ErrKindInvalidArgument,
					Msg:  "interface name too long",
				}}
			})
		d.RegisterHandler(common.KindQueryNetworkState,
			func(json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
				return nil, nil, &common.IPCError{
					Kind: common.ErrKindBug,
					Msg:  "plugin crashed",
				}
			})
	})
	c := newTestClient(t, socketPath, nil)

	err := c.ApplyNetworkState(json.RawMessage(`{}`), nil)
	var valErr *common.ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValueError, got %v", err)
	}
	if valErr.Msg != "interface name too long" {
		t.Errorf("message doesn't match: got %q", valErr.Msg)
	}

	_, err = c.QueryNetworkState(nil)
	var ipcErr *common.IPCError
	if !errors.As(err, &ipcErr) {
		t.Fatalf("expected IPCError, got %v", err)
	}
	if ipcErr.Kind != common.ErrKindBug {
		t.Errorf("kind doesn't match: got %q", ipcErr.Kind)
	}
}

// TestClientUnknownCommandKind checks the stub daemon's reply to a
// command kind it has no handler for.
func TestClientUnknownCommandKind(t *testing.T) {
	socketPath := startDaemon(t, nil)

	tr := unix.NewUnixClientTransport()
	if err := tr.Connect(common.ClientConfig{SocketPath: socketPath, TimeoutSecond: 5}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer tr.Close()

	_, err := tr.Exec(&common.Envelope{Kind: "frobnicate", Data: json.RawMessage(`null`)})
	var ipcErr *common.IPCError
	if !errors.As(err, &ipcErr) {
		t.Fatalf("expected IPCError, got %v", err)
	}
	if ipcErr.Kind != common.ErrKindNoSupport {
		t.Errorf("kind doesn't match: got %q", ipcErr.Kind)
	}
}
