package base

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/transport"
)

// maxRequestPayload caps accepted request frames. Matches the safety
// limit of the production daemon.
const maxRequestPayload = 10 * 1024 * 1024

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	listener   net.Listener
	bufferPool *sync.Pool
	connsMu    sync.Mutex
	conns      map[net.Conn]struct{}
	closed     bool
}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the
// specified connector and per-connection read buffer size
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IIPCServerTransport {
	return &serverTransport{
		connector: connector,
		conns:     make(map[net.Conn]struct{}),
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return make([]byte, bufferSize)
			},
		},
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IIPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	t.listener = listener

	Logger.Infof("Starting %s stub daemon on %s", t.connector.GetName(), config.Endpoint())

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		t.trackConn(conn)
		go t.handleConnection(conn)
	}
}

func (t *serverTransport) Close() error {
	t.connsMu.Lock()
	t.closed = true
	for conn := range t.conns {
		conn.Close()
	}
	t.conns = make(map[net.Conn]struct{})
	t.connsMu.Unlock()

	if t.listener != nil {
		return t.listener.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (t *serverTransport) trackConn(conn net.Conn) {
	t.connsMu.Lock()
	defer t.connsMu.Unlock()
	if t.closed {
		conn.Close()
		return
	}
	t.conns[conn] = struct{}{}
}

func (t *serverTransport) forgetConn(conn net.Conn) {
	t.connsMu.Lock()
	defer t.connsMu.Unlock()
	delete(t.conns, conn)
}

// handleConnection handles incoming requests for one connection. The
// protocol is one in-flight request per connection, so requests are
// processed inline instead of through a worker pool.
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()
	defer t.forgetConn(conn)

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	buf := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(buf)

	for {
		if timeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set read deadline: %v", err)
				return
			}
		}

		data, err := readFrame(conn, buf, maxRequestPayload)
		if err != nil {
			if errors.Is(err, common.ErrConnectionClosed) {
				Logger.Infof("Connection closed by client")
			} else {
				Logger.Errorf("Failed to read request frame: %v", err)
			}
			return
		}

		var replies []*common.Envelope
		req, err := common.DecodeEnvelope(data)
		if err != nil {
			replies = []*common.Envelope{
				common.NewErrorReply(common.ErrKindInvalidArgument, err.Error()),
			}
		} else {
			start := time.Now()
			replies = t.handler(req)
			Logger.Debugf("Processed %s request in %s", req.Kind, time.Since(start))
		}

		for _, reply := range replies {
			payload, err := reply.Encode()
			if err != nil {
				Logger.Errorf("Failed to encode reply: %v", err)
				return
			}
			if timeout > 0 {
				if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
					Logger.Errorf("Failed to set write deadline: %v", err)
					return
				}
			}
			if err := writeFrame(conn, payload); err != nil {
				Logger.Errorf("Failed to write reply: %v", err)
				return
			}
		}
	}
}
