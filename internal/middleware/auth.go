package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/brgrr/internal/auth"
	"github.com/mmynk/brgrr/pkg/brgrrapi"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// SessionIDKey is the context key for the tab session id.
	SessionIDKey contextKey = "session_id"
	// DeviceIDKey is the context key for the device id.
	DeviceIDKey contextKey = "device_id"

	callInfoKey contextKey = "call_info"
)

// callInfo is planted by LoggingInterceptor and filled in by RequireSession,
// so an outer interceptor can see the session of an authenticated call.
type callInfo struct {
	sessionID string
}

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

// GetDeviceID extracts the device ID from the context.
// Returns empty string if not found.
func GetDeviceID(ctx context.Context) string {
	id, _ := ctx.Value(DeviceIDKey).(string)
	return id
}

// WithSession returns ctx carrying the given session and device ids.
func WithSession(ctx context.Context, sessionID, deviceID string) context.Context {
	ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	return context.WithValue(ctx, DeviceIDKey, deviceID)
}

// RequireSession returns a middleware that validates session tokens.
// It extracts the token from the Authorization header, validates it, and adds
// the session and device ids to the request context. Public procedures pass
// through untouched.
func RequireSession(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if brgrrapi.PublicProcedures[req.Spec().Procedure] {
				return next(ctx, req)
			}

			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				slog.Warn("Rejected session token", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			if info, ok := ctx.Value(callInfoKey).(*callInfo); ok {
				info.sessionID = claims.SessionID
			}
			return next(WithSession(ctx, claims.SessionID, claims.DeviceID), req)
		}
	}
}
