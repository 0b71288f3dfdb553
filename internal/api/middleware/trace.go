// Package middleware holds the HTTP middleware chain pieces.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/platform/logger"
)

// TraceMiddleware attaches a trace ID to the request context and seeds the
// context logger with it. Apply early so every downstream log line and
// error response carries the ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
