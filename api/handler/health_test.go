package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fastygo/taskboard/internal/infrastructure/monitor"
)

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("down") }

	cases := []struct {
		name   string
		redis  monitor.PingFunc
		status int
		code   string
	}{
		{name: "healthy", redis: ok, status: http.StatusOK},
		{name: "degraded", redis: fail, status: http.StatusServiceUnavailable, code: "DEGRADED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mon := monitor.New(monitor.Target{StoreDriver: "sqlite", Store: ok, Redis: tc.redis}, 0, nil)
			mon.Refresh()

			ctx := newRequest("", false, "")
			NewHealthHandler(mon, nil, nil).Check(ctx)

			resp := decodeResponse(t, ctx, tc.status)
			if resp.Code != tc.code {
				t.Fatalf("code = %q, want %q", resp.Code, tc.code)
			}
		})
	}
}
