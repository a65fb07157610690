package httpcontext

import (
	"context"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appLogger "github.com/fastygo/taskboard/pkg/logger"
)

func TestAttach_PropagatesIdentifiers(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("X-Request-ID", "req-42")
	ctx.Request.Header.Set("X-User-ID", "u1")

	stdCtx, cancel := NewAdapter(time.Second, "X-User-ID").Attach(&ctx)
	defer cancel()

	if _, ok := stdCtx.Deadline(); !ok {
		t.Fatalf("expected a deadline")
	}
	if got := appLogger.RequestID(stdCtx); got != "req-42" {
		t.Fatalf("request id = %q", got)
	}
	if got := string(ctx.Response.Header.Peek("X-Request-ID")); got != "req-42" {
		t.Fatalf("response request id = %q", got)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	appLogger.WithRequestID(stdCtx, zap.New(core)).Info("x")
	if logs.All()[0].ContextMap()["caller_id"] != "u1" {
		t.Fatalf("caller id not attached: %v", logs.All()[0].ContextMap())
	}
}

func TestAttach_GeneratesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx

	stdCtx, cancel := NewAdapter(0, "").Attach(&ctx)
	cancel()

	if appLogger.RequestID(stdCtx) == "" {
		t.Fatalf("expected a generated request id")
	}
	if stdCtx.Err() != context.Canceled {
		t.Fatalf("cancel did not cancel the context")
	}
}
