package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "reviewharvest/internal/platform/net/http"
	"reviewharvest/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins defaults to any origin
	CORSOrigins []string
	// Timeout bounds a request, 0 means 30s
	Timeout time.Duration
	// Slow marks slow requests as warnings in the access log
	Slow time.Duration
	// Observe receives one call per request, wire metrics here
	Observe func(method, route string, status int, elapsed time.Duration)
}

// CommonStack returns the baseline api middleware slice
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	origins := o.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Observe: o.Observe}),
		// safety
		middleware.RecoverJSON,
		// cache / freshness
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
