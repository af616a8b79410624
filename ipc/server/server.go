package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/transport"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("mockd")

// CommandHandleFunc handles one command. The returned log entries are
// sent as log frames before the terminal frame. A returned error becomes
// an error reply; returning a *common.IPCError (or *common.ValueError)
// controls the wire error kind, any other error maps to the bug kind.
type CommandHandleFunc func(data json.RawMessage) (logs []common.LogEntry, result json.RawMessage, err error)

// MockDaemon is a stub daemon serving the nipart IPC protocol
type MockDaemon struct {
	config    common.ServerConfig
	transport transport.IIPCServerTransport
	handlers  *xsync.MapOf[string, CommandHandleFunc]
}

// NewMockDaemon creates a new stub daemon on the given transport.
//
// Usage:
//
//	d := server.NewMockDaemon(config, unix.NewUnixDefaultServerTransport())
//	d.RegisterHandler(common.KindQueryNetworkState, queryHandler)
//
//	if err := d.Serve(); err != nil {
//		panic(err)
//	}
func NewMockDaemon(config common.ServerConfig, t transport.IIPCServerTransport) *MockDaemon {
	d := &MockDaemon{
		config:    config,
		transport: t,
		handlers:  xsync.NewMapOf[string, CommandHandleFunc](),
	}

	// Built-in liveness probe
	d.RegisterHandler(common.KindPing, func(json.RawMessage) ([]common.LogEntry, json.RawMessage, error) {
		return nil, json.RawMessage(`"pong"`), nil
	})

	t.RegisterHandler(d.handleRequest)
	return d
}

// RegisterHandler routes requests of the given kind to the handler,
// replacing any previous handler for that kind
func (d *MockDaemon) RegisterHandler(kind string, handler CommandHandleFunc) {
	d.handlers.Store(kind, handler)
}

// Serve listens on the configured endpoint until Close is called
func (d *MockDaemon) Serve() error {
	Logger.Infof("Created stub daemon")
	Logger.Infof("%s", d.config.String())
	return d.transport.Listen(d.config)
}

// Close stops the daemon and closes all connections
func (d *MockDaemon) Close() error {
	return d.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleRequest translates one request into its reply frames
func (d *MockDaemon) handleRequest(req *common.Envelope) []*common.Envelope {
	handler, ok := d.handlers.Load(req.Kind)
	if !ok {
		Logger.Warningf("No handler for command kind %q", req.Kind)
		return []*common.Envelope{
			common.NewErrorReply(common.ErrKindNoSupport,
				fmt.Sprintf("unsupported command kind %q", req.Kind)),
		}
	}

	logs, result, err := handler(req.Data)

	replies := make([]*common.Envelope, 0, len(logs)+1)
	for _, entry := range logs {
		replies = append(replies, common.NewLogReply(entry))
	}

	if err != nil {
		var valErr *common.ValueError
		var ipcErr *common.IPCError
		switch {
		case errors.As(err, &valErr):
			replies = append(replies, common.NewErrorReply(common.ErrKindInvalidArgument, valErr.Msg))
		case errors.As(err, &ipcErr):
			replies = append(replies, common.NewErrorReply(ipcErr.Kind, ipcErr.Msg))
		default:
			replies = append(replies, common.NewErrorReply(common.ErrKindBug, err.Error()))
		}
		return replies
	}

	return append(replies, common.NewResultReply(req.Kind, result))
}
