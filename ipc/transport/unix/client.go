package unix

import (
	"net"

	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/transport"
	"github.com/nipart/nipart-go/ipc/transport/base"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("unix", endpoint)
}

// UpgradeConnection applies the configured kernel buffer sizes
func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return nil
	}

	if config.Socket.ReadBufferSize > 0 {
		if err := unixConn.SetReadBuffer(config.Socket.ReadBufferSize); err != nil {
			return err
		}
	}
	if config.Socket.WriteBufferSize > 0 {
		if err := unixConn.SetWriteBuffer(config.Socket.WriteBufferSize); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Methods
// --------------------------------------------------------------------------

// NewUnixClientTransport creates a new Unix client transport forwarding
// daemon logs to the default sink
func NewUnixClientTransport() transport.IIPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{}, nil)
}

// NewUnixClientTransportWithSink creates a new Unix client transport with
// a custom log sink
func NewUnixClientTransportWithSink(sink common.LogSink) transport.IIPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{}, sink)
}
