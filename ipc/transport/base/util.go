package base

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/nipart/nipart-go/ipc/common"
)

// writeFrame writes a frame to the connection with the format:
// - 4 bytes: payload length (uint32, big endian)
// - N bytes: payload (UTF-8 JSON text)
// The header and payload go out in a single writev call so two frames
// written under the same lock never interleave.
func writeFrame(w io.Writer, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))

	b := net.Buffers{header[:], payload}
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// readFrame reads a frame from the connection using the provided buffer.
// If the buffer is too small, it allocates a new temporary buffer for the
// payload. It loops until the exact byte count is satisfied, so partial
// reads from the transport are never surfaced.
//
// A peer that closes before the 4 length bytes arrive yields
// common.ErrConnectionClosed. A zero-length payload is a legal frame. A
// close inside the payload is a truncation, reported distinctly. maxLen
// bounds the accepted payload size; 0 means no bound.
func readFrame(r io.Reader, buf []byte, maxLen uint32) ([]byte, error) {
	if buf == nil || len(buf) < 4 {
		buf = make([]byte, 4)
	}

	// Read header
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, common.ErrConnectionClosed
		}
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}

	length := binary.BigEndian.Uint32(buf[:4])
	if maxLen > 0 && length > maxLen {
		return nil, fmt.Errorf("frame payload of %d bytes exceeds limit of %d", length, maxLen)
	}

	// If no payload, return empty slice
	if length == 0 {
		return []byte{}, nil
	}

	if len(buf) < int(length) {
		buf = make([]byte, length)
	}

	// Read payload
	if _, err := io.ReadFull(r, buf[:length]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated frame: connection closed after header announcing %d bytes", length)
		}
		return nil, fmt.Errorf("failed to read frame payload: %w", err)
	}

	return buf[:length], nil
}
