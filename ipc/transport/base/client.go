package base

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/transport"
)

var Logger = logger.GetLogger("transport/ipc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the given endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Metrics
// -----------------------------------------------------------

var (
	metricFramesSent     = metrics.NewCounter(`nipart_ipc_frames_sent_total`)
	metricFramesReceived = metrics.NewCounter(`nipart_ipc_frames_received_total`)
	metricLogFrames      = metrics.NewCounter(`nipart_ipc_log_frames_total`)
	metricErrorReplies   = metrics.NewCounter(`nipart_ipc_error_replies_total`)
	metricExecFailures   = metrics.NewCounter(`nipart_ipc_exec_failures_total`)
	metricExecDuration   = metrics.NewHistogram(`nipart_ipc_exec_duration_seconds`)
)

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// initialReadBufferSize is the reusable read buffer a connection starts
// with; readFrame grows past it only for oversized payloads
const initialReadBufferSize = 64 * 1024

// clientTransport implements the core client transport functionality
// independent of the specific transport medium
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig
	sink      common.LogSink
	conn      net.Conn
	connMu    sync.Mutex // Serializes whole exchanges on the connection
	readBuf   []byte
}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the
// specified connector. A nil sink falls back to common.EmitLogEntry,
// which forwards daemon logs to loggers named after their source.
func NewBaseClientTransport(connector IClientConnector, sink common.LogSink) transport.IIPCClientTransport {
	if sink == nil {
		sink = common.EmitLogEntry
	}
	return &clientTransport{
		connector: connector,
		sink:      sink,
		readBuf:   make([]byte, initialReadBufferSize),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IIPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	// Close a previous connection if one exists
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}

	t.config = config

	conn, err := t.connector.Connect(config.Endpoint())
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", config.Endpoint(), err)
	}

	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		return fmt.Errorf("failed to upgrade connection to %s: %w", config.Endpoint(), err)
	}

	t.conn = conn
	Logger.Infof("Connected to %s using %s transport", config.Endpoint(), t.connector.GetName())
	return nil
}

func (t *clientTransport) Exec(cmd *common.Envelope) (json.RawMessage, error) {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	data, err := t.exec(cmd)
	if err != nil {
		metricExecFailures.Inc()
		return nil, err
	}
	return data, nil
}

func (t *clientTransport) Close() error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// exec runs one request/reply exchange. Caller holds connMu.
func (t *clientTransport) exec(cmd *common.Envelope) (json.RawMessage, error) {
	if t.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	payload, err := cmd.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s command: %w", cmd.Kind, err)
	}

	start := time.Now()

	if err := t.setWriteDeadline(); err != nil {
		return nil, err
	}
	if err := writeFrame(t.conn, payload); err != nil {
		return nil, err
	}
	metricFramesSent.Inc()

	// Read reply frames until a terminal one arrives. Log frames may
	// precede it in any count including zero.
	for {
		if err := t.setReadDeadline(); err != nil {
			return nil, err
		}

		data, err := readFrame(t.conn, t.readBuf, 0)
		if err != nil {
			return nil, err
		}
		metricFramesReceived.Inc()

		env, err := common.DecodeEnvelope(data)
		if err != nil {
			return nil, err
		}

		switch env.Kind {
		case common.KindLog:
			metricLogFrames.Inc()
			var entry common.LogEntry
			if err := json.Unmarshal(env.Data, &entry); err != nil {
				return nil, fmt.Errorf("%w: log payload: %v", common.ErrMalformedEnvelope, err)
			}
			if err := t.sink(entry); err != nil {
				return nil, err
			}

		case common.KindError:
			metricErrorReplies.Inc()
			return nil, common.ErrorFromData(env.Data)

		default:
			if t.config.StrictKinds && env.Kind != cmd.Kind {
				return nil, fmt.Errorf("%w: got %q, want %q", common.ErrUnexpectedKind, env.Kind, cmd.Kind)
			}
			metricExecDuration.UpdateDuration(start)
			return env.Data, nil
		}
	}
}

func (t *clientTransport) setReadDeadline() error {
	if t.config.TimeoutSecond <= 0 {
		return nil
	}
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	return nil
}

func (t *clientTransport) setWriteDeadline() error {
	if t.config.TimeoutSecond <= 0 {
		return nil
	}
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	if err := t.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	return nil
}
