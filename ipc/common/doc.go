// Package common provides core data structures shared across the nipart
// IPC system. It defines the wire envelope, command encoders, the daemon
// error taxonomy, and configuration structures used by other packages.
//
// The package focuses on:
//   - Envelope definition for every frame in both directions
//   - Command factories for the supported daemon commands
//   - Typed errors for daemon-reported and transport failures
//   - Forwarding of daemon log notifications into the logging facility
//   - Configuration structures for client and stub-daemon components
//
// Key Components:
//
//   - Envelope: The top-level {kind, data} JSON structure carried by every
//     frame. The kind string discriminates between log notifications,
//     error replies, and command-specific success payloads.
//
//   - NewPingCommand / NewQueryCommand / NewApplyCommand: Factory
//     functions producing request envelopes with the exact payload
//     nesting the daemon expects for routing.
//
//   - IPCError / ValueError: Daemon-reported errors mapped from the wire
//     error kind string. Unknown kinds always degrade to the generic
//     IPCError so new daemon error kinds need no client update.
//
//   - LogEntry: A transient daemon log notification, forwarded to a
//     logger named after its source and then discarded.
//
//   - ClientConfig / ServerConfig: Connection parameters, timeouts and
//     socket tuning for the client and the stub daemon.
package common
