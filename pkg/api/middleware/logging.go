package middleware

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
)

// Logging logs one line per request with status, latency and the request
// ID when RequestID runs earlier in the chain. 5xx responses log at error
// level, 4xx at warn.
func Logging(logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Int("status", rec.statusCode),
				logging.Latency(time.Since(start)),
			}
			if id := GetRequestID(r); id != "" {
				fields = append(fields, logging.String("request_id", id))
			}

			switch {
			case rec.statusCode >= 500:
				logger.Error("request failed", fields...)
			case rec.statusCode >= 400:
				logger.Warn("request rejected", fields...)
			default:
				logger.Info("request", fields...)
			}
		})
	}
}
