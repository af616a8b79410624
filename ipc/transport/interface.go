package transport

import (
	"encoding/json"

	"github.com/nipart/nipart-go/ipc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc handles one incoming request envelope and returns the
// reply envelopes to send back, in order. The last reply is the terminal
// one; every reply before it must be a log notification.
type ServerHandleFunc func(req *common.Envelope) []*common.Envelope

// IIPCServerTransport is the interface for the daemon-side transport layer
type IIPCServerTransport interface {
	// RegisterHandler registers the handler called for every decoded
	// request envelope
	RegisterHandler(handler ServerHandleFunc)
	// Listen binds the endpoint and serves connections until Close
	Listen(config common.ServerConfig) error
	// Close stops the listener and closes all active connections
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IIPCClientTransport is the interface for the client transport.
//
// Exec is strictly synchronous: it blocks until the terminal reply of the
// command arrives. A second Exec must not be issued concurrently; the
// implementation serializes callers, it does not pipeline them.
type IIPCClientTransport interface {
	// Connect establishes the connection described by the configuration
	Connect(config common.ClientConfig) error
	// Exec sends one command and returns the data of its terminal reply.
	// Log replies received in between are routed to the log sink.
	Exec(cmd *common.Envelope) (json.RawMessage, error)
	// Close closes the transport connection
	Close() error
}
