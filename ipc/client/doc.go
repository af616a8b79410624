// Package client implements the high-level nipart client. It provides
// command round-trips against the daemon while the transport layer takes
// care of framing, log routing and error mapping.
//
// The package focuses on:
//   - One method per daemon command (Ping, QueryNetworkState,
//     ApplyNetworkState)
//   - Opaque handling of network state payloads (json.RawMessage in both
//     directions, never inspected)
//   - Convenience helpers mirroring the common workflows (Show, Apply)
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//		SocketPath:    common.DefaultSocketPath,
//		TimeoutSecond: 30,
//	}
//
//	// Create the client over the unix transport
//	cli, _ := client.New(config, unix.NewUnixClientTransport())
//	defer cli.Close()
//
//	// Use the client
//	cli.Ping()
//	state, _ := cli.QueryNetworkState(nil)
//
// Thread Safety:
//
//	A Client owns exactly one connection and runs one command at a time;
//	concurrent calls are serialized by the transport, never pipelined.
//	Use one Client per goroutine for parallel round-trips.
package client
