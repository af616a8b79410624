// Package transport defines the interfaces of the IPC transport layer.
//
// The transport layer moves envelopes between client and daemon over an
// ordered, reliable byte stream. Clients own exactly one socket and run a
// strictly synchronous exchange: one request frame out, then a loop of
// reply frames in, with log notifications consumed transparently until a
// terminal reply arrives.
//
// Concrete transports live in subpackages:
//
//   - base: Transport-agnostic frame codec, the client connection, and
//     the accept loop used by the stub daemon.
//
//   - unix: Unix domain socket connectors, the daemon's native transport.
package transport
