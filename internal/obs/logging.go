package obs

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// NewLogger builds the process-wide zerolog logger. Format "console" or
// "text" switches to human-readable output; anything else stays JSON.
// Unparseable levels fall back to info.
func NewLogger(format, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	var sink io.Writer = os.Stdout
	if f := strings.ToLower(strings.TrimSpace(format)); f == "console" || f == "text" {
		sink = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(sink).With().Timestamp().Logger()
}

// RequestLogger emits one structured log line per request, correlated with
// the request ID and, when tracing is on, the active span.
type RequestLogger struct {
	Logger zerolog.Logger
}

func (l RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := NewStatusRecorder(w)
		started := time.Now()
		next.ServeHTTP(rec, r)

		route := RoutePatternFromContext(r.Context())
		if route == "" {
			route = r.URL.Path
		}

		line := l.Logger.Info().
			Str("method", r.Method).
			Str("route", route).
			Str("path", r.URL.Path).
			Int("status", rec.Status()).
			Int64("duration_ms", time.Since(started).Milliseconds()).
			Int64("bytes", rec.BytesWritten()).
			Str("request_id", middleware.GetReqID(r.Context()))

		if span := trace.SpanContextFromContext(r.Context()); span.IsValid() {
			line = line.
				Str("trace_id", span.TraceID().String()).
				Str("span_id", span.SpanID().String())
		}
		if r.Host != "" {
			line = line.Str("host", r.Host)
		}
		if r.RemoteAddr != "" {
			line = line.Str("remote_addr", r.RemoteAddr)
		}
		if ua := r.UserAgent(); ua != "" {
			line = line.Str("user_agent", ua)
		}
		line.Msg("http_request")
	})
}
