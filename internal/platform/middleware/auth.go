package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// StationTokenValidator validates a bearer token and returns the station name
// it asserts.
type StationTokenValidator interface {
	ValidateStationToken(token string) (string, error)
}

type contextKeyStation struct{}

// GetStation retrieves the authenticated station name from the context.
func GetStation(ctx context.Context) string {
	station, ok := ctx.Value(contextKeyStation{}).(string)
	if !ok {
		return ""
	}
	return station
}

// WithStation is used by tests to simulate an authenticated request.
func WithStation(ctx context.Context, station string) context.Context {
	return context.WithValue(ctx, contextKeyStation{}, station)
}

// RequireStation rejects requests without a valid station bearer token.
func RequireStation(validator StationTokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}
			station, err := validator.ValidateStationToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected station token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), contextKeyStation{}, station)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid or expired token"}`))
}
