package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Envelope Structure
// --------------------------------------------------------------------------

// Envelope represents a single wire message used for both requests and
// responses. Every frame carries exactly one envelope. The Kind string
// discriminates the shape of Data.
type Envelope struct {
	// Kind of envelope (see the Kind* constants)
	Kind string `json:"kind"`

	// Data payload, shape depends on Kind
	Data json.RawMessage `json:"data"`
}

// Encode serializes the envelope to JSON text
func (e *Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEnvelope parses a frame payload into an Envelope.
// A payload that is not valid JSON or lacks the kind field yields
// ErrMalformedEnvelope.
func DecodeEnvelope(payload []byte) (*Envelope, error) {
	var raw struct {
		Kind *string         `json:"kind"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if raw.Kind == nil {
		return nil, fmt.Errorf("%w: missing kind field", ErrMalformedEnvelope)
	}
	return &Envelope{Kind: *raw.Kind, Data: raw.Data}, nil
}

// --------------------------------------------------------------------------
// Command Factory Functions
// --------------------------------------------------------------------------

// NewPingCommand creates a new ping request. The payload is the literal
// kind string again, as the daemon expects.
func NewPingCommand() *Envelope {
	return &Envelope{
		Kind: KindPing,
		Data: json.RawMessage(`"ping"`),
	}
}

// NewQueryCommand creates a new query-network-state request. The options
// are nested under the kind string inside data; the daemon routes the
// command by that inner key.
func NewQueryCommand(opt QueryOption) (*Envelope, error) {
	data, err := json.Marshal(map[string]QueryOption{KindQueryNetworkState: opt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query options: %w", err)
	}
	return &Envelope{Kind: KindQueryNetworkState, Data: data}, nil
}

// NewApplyCommand creates a new apply-network-state request. The desired
// state and the options travel as an ordered two-element array under the
// kind key; the daemon decodes them positionally, so the order is fixed.
// The desired state is forwarded opaquely, its content is never inspected.
func NewApplyCommand(desiredState json.RawMessage, opt ApplyOption) (*Envelope, error) {
	optData, err := json.Marshal(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode apply options: %w", err)
	}
	if len(desiredState) == 0 {
		desiredState = json.RawMessage("null")
	}
	data, err := json.Marshal(map[string][2]json.RawMessage{
		KindApplyNetworkState: {desiredState, optData},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode apply payload: %w", err)
	}
	return &Envelope{Kind: KindApplyNetworkState, Data: data}, nil
}

// --------------------------------------------------------------------------
// Reply Factory Functions (used by the stub daemon)
// --------------------------------------------------------------------------

// NewResultReply creates a success reply echoing the request kind
func NewResultReply(kind string, data json.RawMessage) *Envelope {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return &Envelope{Kind: kind, Data: data}
}

// NewErrorReply creates an error reply carrying a wire error kind and message
func NewErrorReply(errKind, msg string) *Envelope {
	data, _ := json.Marshal(struct {
		Kind string `json:"kind"`
		Msg  string `json:"msg"`
	}{Kind: errKind, Msg: msg})
	return &Envelope{Kind: KindError, Data: data}
}

// NewLogReply creates a log notification reply
func NewLogReply(entry LogEntry) *Envelope {
	data, _ := json.Marshal(entry)
	return &Envelope{Kind: KindLog, Data: data}
}

// --------------------------------------------------------------------------
// Envelope Kind Constants
// --------------------------------------------------------------------------

const (
	// Outgoing command kinds

	KindPing              = "ping"
	KindQueryNetworkState = "query-network-state"
	KindApplyNetworkState = "apply-network-state"

	// Incoming reply kinds. Any other kind is treated as an ordinary
	// success reply and its data is returned verbatim to the caller.

	KindError = "error"
	KindLog   = "log"
)
