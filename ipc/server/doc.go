// Package server implements a stub nipart daemon. It speaks the real wire
// protocol over a unix socket but serves canned data instead of touching
// any network configuration, which makes it suitable for integration
// tests and for developing against the client without root privileges.
//
// The stub routes each request by its envelope kind to a registered
// CommandHandleFunc. A handler may return log entries, which are sent as
// log frames before the terminal frame, matching the daemon's contract of
// zero or more log frames followed by exactly one terminal frame.
//
// A ping handler answering "pong" is built in. Handlers for other kinds,
// including replacements for ping, are registered by the embedding code.
package server
