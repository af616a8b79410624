package base

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nipart/nipart-go/ipc/common"
)

// TestFrameRoundTrip checks that a written frame reads back byte-exact,
// including the empty payload.
func TestFrameRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 2, 3, 16, 512, 70000} {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i % 251)
		}

		var buf bytes.Buffer
		if err := writeFrame(&buf, payload); err != nil {
			t.Fatalf("size %d: failed to write frame: %v", size, err)
		}
		if buf.Len() != size+4 {
			t.Fatalf("size %d: frame length is %d, expected %d", size, buf.Len(), size+4)
		}

		got, err := readFrame(&buf, nil, 0)
		if err != nil {
			t.Fatalf("size %d: failed to read frame: %v", size, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("size %d: payload doesn't match after round trip", size)
		}
	}
}

// TestReadFrameReusesBuffer checks that a small provided buffer does not
// truncate larger payloads.
func TestReadFrameReusesBuffer(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1024)

	var buf bytes.Buffer
	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}

	small := make([]byte, 8)
	got, err := readFrame(&buf, small, 0)
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload doesn't match after round trip")
	}
}

// TestReadFrameClosedConnection checks that a peer closing before the 4
// length bytes arrive yields ErrConnectionClosed, never a decode error.
func TestReadFrameClosedConnection(t *testing.T) {
	tests := map[string][]byte{
		"no bytes":       {},
		"partial length": {0x00, 0x00},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := readFrame(bytes.NewReader(raw), nil, 0)
			if !errors.Is(err, common.ErrConnectionClosed) {
				t.Fatalf("expected ErrConnectionClosed, got %v", err)
			}
		})
	}
}

// TestReadFrameTruncatedPayload checks that a close inside the payload is
// reported as a truncation, distinct from a clean pre-header close.
func TestReadFrameTruncatedPayload(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x0a, 'p', 'a', 'r', 't'}

	_, err := readFrame(bytes.NewReader(raw), nil, 0)
	if err == nil {
		t.Fatal("expected an error for a truncated payload")
	}
	if errors.Is(err, common.ErrConnectionClosed) {
		t.Fatalf("truncation must not be reported as ErrConnectionClosed: %v", err)
	}
}

func TestReadFrameMaxLen(t *testing.T) {
	var buf bytes.Buffer
	if err := writeFrame(&buf, bytes.Repeat([]byte("x"), 100)); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}

	if _, err := readFrame(&buf, nil, 10); err == nil {
		t.Fatal("expected an error for a payload above maxLen")
	}
}
