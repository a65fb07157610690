package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return token
}

func run(t *testing.T, authHeader string, extra map[string]string) (*fasthttp.RequestCtx, bool) {
	t.Helper()
	called := false
	handler := JWTAuth(testSecret, "taskboard", nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	var ctx fasthttp.RequestCtx
	if authHeader != "" {
		ctx.Request.Header.Set("Authorization", authHeader)
	}
	for k, v := range extra {
		ctx.Request.Header.Set(k, v)
	}
	handler(&ctx)
	return &ctx, called
}

func TestJWTAuth_ForwardsClaims(t *testing.T) {
	token := signed(t, jwt.MapClaims{
		"user_id":  "u1",
		"is_admin": true,
		"iss":      "taskboard",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	ctx, called := run(t, "Bearer "+token, nil)
	if !called {
		t.Fatalf("handler not called, status %d", ctx.Response.StatusCode())
	}
	if got := string(ctx.Request.Header.Peek(HeaderUserID)); got != "u1" {
		t.Fatalf("user header = %q", got)
	}
	if got := string(ctx.Request.Header.Peek(HeaderIsAdmin)); got != "true" {
		t.Fatalf("admin header = %q", got)
	}
}

func TestJWTAuth_DropsSpoofedHeaders(t *testing.T) {
	ctx, called := run(t, "", map[string]string{HeaderUserID: "intruder", HeaderIsAdmin: "true"})
	if called {
		t.Fatalf("handler called without a token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	if len(ctx.Request.Header.Peek(HeaderUserID)) != 0 {
		t.Fatalf("spoofed identity header survived")
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	cases := map[string]string{
		"garbage":      "Bearer not-a-token",
		"wrong issuer": "Bearer " + signed(t, jwt.MapClaims{"user_id": "u1", "iss": "elsewhere"}),
		"missing user": "Bearer " + signed(t, jwt.MapClaims{"iss": "taskboard"}),
		"expired":      "Bearer " + signed(t, jwt.MapClaims{"user_id": "u1", "iss": "taskboard", "exp": time.Now().Add(-time.Hour).Unix()}),
	}
	for name, header := range cases {
		ctx, called := run(t, header, nil)
		if called || ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
			t.Fatalf("%s: called=%v status=%d", name, called, ctx.Response.StatusCode())
		}
	}
}
