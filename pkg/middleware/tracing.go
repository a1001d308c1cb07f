package middleware

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestTracing wraps next in an otel server span per request. Health
// and API doc requests are not traced.
func RequestTracing(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, service,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
			otelhttp.WithFilter(func(r *http.Request) bool {
				return shouldTrace(r.URL.Path)
			}),
		)
	}
}

func shouldTrace(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	return normalized != "/health" && !strings.HasPrefix(normalized, "/swagger/")
}
