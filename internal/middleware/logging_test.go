package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/brgrr/internal/auth"
	"github.com/mmynk/brgrr/internal/metrics"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingWrapsAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	final := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&struct{}{}), nil
	}

	t.Run("rejected call is logged and measured", func(t *testing.T) {
		logs := captureLogs(t)
		m := metrics.New()
		call := LoggingInterceptor(m)(RequireSession(jwtManager)(final))

		_, err := call(context.Background(), connect.NewRequest(&struct{}{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Fatalf("expected unauthenticated, got %v", err)
		}

		if !strings.Contains(logs.String(), "RPC error") {
			t.Errorf("expected rejected call to be logged, got %q", logs.String())
		}
		n, err := testutil.GatherAndCount(m.Registry, "brgrr_rpc_duration_seconds")
		if err != nil {
			t.Fatalf("gather failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected one latency series, got %d", n)
		}
	})

	t.Run("authenticated call logs its session", func(t *testing.T) {
		logs := captureLogs(t)
		call := LoggingInterceptor(nil)(RequireSession(jwtManager)(final))

		token, err := jwtManager.Generate("s1", "d1")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		req := connect.NewRequest(&struct{}{})
		req.Header().Set("Authorization", "Bearer "+token)

		if _, err := call(context.Background(), req); err != nil {
			t.Fatalf("call failed: %v", err)
		}
		if !strings.Contains(logs.String(), "session_id=s1") {
			t.Errorf("expected session id in log, got %q", logs.String())
		}
	})
}
