package common

import (
	"errors"
	"testing"
)

func TestEmitLogEntryLevels(t *testing.T) {
	for _, level := range []string{
		LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError,
	} {
		t.Run(level, func(t *testing.T) {
			entry := LogEntry{Source: "nipart-test", Level: level, Message: "hello"}
			if err := EmitLogEntry(entry); err != nil {
				t.Errorf("unexpected error for level %q: %v", level, err)
			}
		})
	}
}

func TestEmitLogEntryUnknownLevel(t *testing.T) {
	entry := LogEntry{Source: "nipart-test", Level: "fatal", Message: "hello"}
	err := EmitLogEntry(entry)

	var levelErr *UnknownLogLevelError
	if !errors.As(err, &levelErr) {
		t.Fatalf("expected UnknownLogLevelError, got %v", err)
	}
	if levelErr.Level != "fatal" {
		t.Errorf("level doesn't match: got %q", levelErr.Level)
	}
}
