// Package ipc implements the wire protocol spoken between nipart clients
// and the nipart network state daemon. It acts as the communication layer
// for querying and applying network state over a local unix socket.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures shared by both sides of the socket,
//     including the kind-tagged Envelope, command factories and option
//     types, the daemon error taxonomy, log entries, configuration
//     structures, and logging.
//
//   - transport: Stream transport abstractions with a pluggable connector
//     (unix sockets), the length-prefixed frame codec, and the synchronous
//     request/reply connection.
//
//   - client: The high-level Client used by applications, exposing Ping,
//     QueryNetworkState and ApplyNetworkState plus convenience helpers.
//
//   - server: A stub daemon that answers the protocol with canned data,
//     used by integration tests and the `npt mockd` command.
package ipc
