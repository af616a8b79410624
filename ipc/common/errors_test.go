package common

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestErrorKindDispatch verifies that invalid-argument maps to the
// ValueError refinement and every other kind to the generic IPCError.
func TestErrorKindDispatch(t *testing.T) {
	tests := map[string]struct {
		kind       string
		valueError bool
	}{
		"invalid argument": {kind: "invalid-argument", valueError: true},
		"bug":              {kind: "bug"},
		"no support":       {kind: "no-support"},
		"future kind":      {kind: "quantum-entanglement-failure"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(map[string]string{"kind": tc.kind, "msg": "boom"})
			if err != nil {
				t.Fatalf("failed to build error payload: %v", err)
			}

			mapped := ErrorFromData(data)
			if mapped == nil {
				t.Fatal("expected an error, got nil")
			}
			if mapped.Error() != "boom" {
				t.Errorf("error message doesn't match: got %q", mapped.Error())
			}

			var valErr *ValueError
			if got := errors.As(mapped, &valErr); got != tc.valueError {
				t.Fatalf("ValueError match = %t, expected %t", got, tc.valueError)
			}

			// The generic type matches every daemon error, the
			// ValueError refinement included
			var ipcErr *IPCError
			if !errors.As(mapped, &ipcErr) {
				t.Fatalf("expected IPCError match, got %T", mapped)
			}
			if ipcErr.Kind != tc.kind {
				t.Errorf("kind doesn't match: got %q", ipcErr.Kind)
			}
		})
	}
}

func TestErrorFromDataMalformedPayload(t *testing.T) {
	err := ErrorFromData(json.RawMessage(`"not an object"`))
	if !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}
