package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and stores a logger
// carrying it in the request context. This middleware should be applied
// early in the middleware chain so that all subsequent handlers log with
// the trace ID attached.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()

		log := slog.With(slog.String("trace_id", traceID))
		ctx := logger.WithLogger(r.Context(), log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
