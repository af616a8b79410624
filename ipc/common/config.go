package common

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSocketPath is the well-known local endpoint of the daemon
const DefaultSocketPath = "/var/run/nipart/sockets/daemon"

// --------------------------------------------------------------------------
// Socket tuning
// --------------------------------------------------------------------------

// SocketConf holds kernel buffer sizes applied to an established
// connection. Zero values leave the system defaults untouched.
type SocketConf struct {
	ReadBufferSize  int
	WriteBufferSize int
}

// --------------------------------------------------------------------------
// IPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for a client connection
type ClientConfig struct {
	// SocketPath is the daemon endpoint. Empty means DefaultSocketPath.
	SocketPath string

	// TimeoutSecond bounds each frame read and write. 0 blocks forever.
	TimeoutSecond int

	// StrictKinds rejects terminal replies whose kind differs from the
	// request kind instead of passing their data through.
	StrictKinds bool

	// Socket tuning
	Socket SocketConf
}

// Endpoint returns the configured socket path or the default
func (c *ClientConfig) Endpoint() string {
	if c.SocketPath == "" {
		return DefaultSocketPath
	}
	return c.SocketPath
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("IPC Client")
	addField("Socket", c.Endpoint())
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Strict Kinds", strconv.FormatBool(c.StrictKinds))

	if c.Socket.ReadBufferSize > 0 || c.Socket.WriteBufferSize > 0 {
		addSection("Socket Tuning")
		addField("Read Buffer", fmt.Sprintf("%d bytes", c.Socket.ReadBufferSize))
		addField("Write Buffer", fmt.Sprintf("%d bytes", c.Socket.WriteBufferSize))
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Stub daemon configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the stub daemon
type ServerConfig struct {
	// SocketPath is the endpoint to listen on. Empty means DefaultSocketPath.
	SocketPath string

	// TimeoutSecond bounds each frame read and write per connection
	TimeoutSecond int

	// Logging configuration
	LogLevel string
}

// Endpoint returns the configured socket path or the default
func (c *ServerConfig) Endpoint() string {
	if c.SocketPath == "" {
		return DefaultSocketPath
	}
	return c.SocketPath
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Stub Daemon")
	addField("Socket", c.Endpoint())
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
