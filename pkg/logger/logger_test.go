package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Service: "taskboard", Output: zapcore.AddSync(&buf)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("hello")
	_ = log.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unexpected error: %v (%s)", err, buf.String())
	}
	if entry["service"] != "taskboard" || entry["msg"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Config{Level: "chatty", Output: zapcore.AddSync(&buf)})
	log.Debug("hidden")
	_ = log.Sync()
	if buf.Len() != 0 {
		t.Fatalf("debug entry written at info level: %s", buf.String())
	}
}

func TestWithRequestID_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithUserID(ContextWithRequestID(context.Background(), "req-1"), "u1")
	WithRequestID(ctx, base).Info("task created")
	WithRequestID(context.Background(), base).Info("plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["caller_id"] != "u1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if len(entries[1].Context) != 0 {
		t.Fatalf("empty context should add no fields: %v", entries[1].ContextMap())
	}
}
