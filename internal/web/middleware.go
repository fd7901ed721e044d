package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kkkkikiki/lukitas/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

type loggerKey struct{}

// loggerFrom returns the request scoped logger, or a no-op logger.
func loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// withLogging tags each request with an id, logs its completion and records
// its latency by route pattern.
func withLogging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		reqLogger := logger.With(zap.String("request_id", requestID))
		tagged := r.WithContext(context.WithValue(r.Context(), loggerKey{}, reqLogger))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, tagged)

		// the mux sets Pattern on the request it was handed
		route := tagged.Pattern
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), duration.Seconds())

		reqLogger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int64("duration_ms", duration.Milliseconds()),
		)
	})
}
