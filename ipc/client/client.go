package client

import (
	"encoding/json"
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/transport"
	"github.com/nipart/nipart-go/ipc/transport/unix"
)

var Logger = logger.GetLogger("ipc")

// Client is a connected nipart client
type Client struct {
	config    common.ClientConfig
	transport transport.IIPCClientTransport
}

// New creates a new client and connects the given transport.
// Connection establishment is not retried; a daemon that is not listening
// surfaces immediately.
func New(config common.ClientConfig, t transport.IIPCClientTransport) (*Client, error) {
	if err := t.Connect(config); err != nil {
		return nil, err
	}
	return &Client{config: config, transport: t}, nil
}

// Close closes the underlying connection
func (c *Client) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Daemon Commands
// --------------------------------------------------------------------------

// Ping checks daemon liveness. The daemon answers with the literal "pong".
func (c *Client) Ping() (string, error) {
	data, err := c.transport.Exec(common.NewPingCommand())
	if err != nil {
		return "", err
	}
	var reply string
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", fmt.Errorf("%w: ping reply: %v", common.ErrMalformedEnvelope, err)
	}
	return reply, nil
}

// QueryNetworkState fetches the network state selected by the options.
// A nil opt queries the running state at the latest schema version. The
// returned state is opaque to this layer.
func (c *Client) QueryNetworkState(opt *common.QueryOption) (json.RawMessage, error) {
	if opt == nil {
		o := common.DefaultQueryOption()
		opt = &o
	}
	Logger.Debugf("Querying %s at schema version %d", opt.Kind, opt.Version)
	cmd, err := common.NewQueryCommand(*opt)
	if err != nil {
		return nil, err
	}
	return c.transport.Exec(cmd)
}

// ApplyNetworkState asks the daemon to apply the desired state. The state
// is forwarded opaquely; validation is the daemon's concern. A nil opt
// applies with verification at the latest schema version.
func (c *Client) ApplyNetworkState(desiredState json.RawMessage, opt *common.ApplyOption) error {
	if opt == nil {
		o := common.DefaultApplyOption()
		opt = &o
	}
	Logger.Debugf("Applying desired state at schema version %d (no-verify=%t)", opt.Version, opt.NoVerify)
	cmd, err := common.NewApplyCommand(desiredState, *opt)
	if err != nil {
		return err
	}
	_, err = c.transport.Exec(cmd)
	return err
}

// --------------------------------------------------------------------------
// Convenience Helpers
// --------------------------------------------------------------------------

// Show queries the running network state via the default daemon socket
func Show() (json.RawMessage, error) {
	cli, err := New(common.ClientConfig{}, unix.NewUnixClientTransport())
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	opt := common.RunningQueryOption()
	return cli.QueryNetworkState(&opt)
}

// Apply applies the desired state via the default daemon socket
func Apply(desiredState json.RawMessage, verifyChange bool) error {
	cli, err := New(common.ClientConfig{}, unix.NewUnixClientTransport())
	if err != nil {
		return err
	}
	defer cli.Close()

	opt := common.NewApplyOption(common.LatestSchemaVersion, verifyChange)
	return cli.ApplyNetworkState(desiredState, &opt)
}
