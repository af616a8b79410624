package common

import (
	"encoding/json"
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Transport / Decode Errors
// --------------------------------------------------------------------------

var (
	// ErrConnectionClosed signals the daemon closed the socket before a
	// complete length prefix arrived. A zero-length payload is a legal
	// frame and is never reported as this error.
	ErrConnectionClosed = errors.New("ipc: connection closed by daemon")

	// ErrMalformedEnvelope signals a frame payload that is not valid JSON
	// or violates the envelope schema.
	ErrMalformedEnvelope = errors.New("ipc: malformed envelope")

	// ErrUnexpectedKind signals a terminal reply whose kind differs from
	// the request kind. Only returned when strict kind checking is on.
	ErrUnexpectedKind = errors.New("ipc: unexpected reply kind")
)

// --------------------------------------------------------------------------
// Daemon-Reported Errors
// --------------------------------------------------------------------------

// Wire error kinds with dedicated handling. Every other kind string maps
// to the generic IPCError, so daemon-added kinds degrade instead of
// failing to parse.
const (
	ErrKindInvalidArgument = "invalid-argument"
	ErrKindBug             = "bug"
	ErrKindNoSupport       = "no-support"
)

// IPCError is an application error reported by the daemon via an error
// envelope. Kind is the wire discriminator, Msg the human-readable cause.
type IPCError struct {
	Kind string `json:"kind"`
	Msg  string `json:"msg"`
}

func (e *IPCError) Error() string {
	return e.Msg
}

// ValueError is the refinement of IPCError for kind invalid-argument,
// letting callers branch on validation failures without string matching.
type ValueError struct {
	IPCError
}

// Unwrap exposes the embedded IPCError, so a single errors.As check for
// the generic type also matches the refinement.
func (e *ValueError) Unwrap() error {
	return &e.IPCError
}

// ErrorFromData maps the data payload of an error envelope to a typed
// error. The default arm is always the generic IPCError.
func ErrorFromData(data json.RawMessage) error {
	var e IPCError
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("%w: error payload: %v", ErrMalformedEnvelope, err)
	}
	switch e.Kind {
	case ErrKindInvalidArgument:
		return &ValueError{IPCError: e}
	default:
		return &e
	}
}

// --------------------------------------------------------------------------
// Internal-Bug Errors
// --------------------------------------------------------------------------

// UnknownLogLevelError signals a daemon log notification with a level
// outside the recognized set. This means client and daemon have diverged
// on the notification vocabulary; it is a bug class, not a protocol error.
type UnknownLogLevelError struct {
	Level string
}

func (e *UnknownLogLevelError) Error() string {
	return fmt.Sprintf("ipc: unknown log level %q", e.Level)
}
