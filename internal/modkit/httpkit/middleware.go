package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"codemix/internal/platform/config"
	"codemix/internal/platform/net/middleware"
)

// StackOptions tune CommonStack
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	CORSOrigins []string
	// MaxInFlight caps concurrent requests, 0 for no cap
	MaxInFlight int
	Backlog     int
}

// StackFromConfig reads REQUEST_TIMEOUT, SLOW_REQUEST, CORS_ORIGINS,
// MAX_IN_FLIGHT and BACKLOG
func StackFromConfig(c config.Conf) StackOptions {
	return StackOptions{
		Timeout:     c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest: c.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		CORSOrigins: c.MayCSV("CORS_ORIGINS", nil),
		MaxInFlight: c.MayInt("MAX_IN_FLIGHT", 0),
		Backlog:     c.MayInt("BACKLOG", 64),
	}
}

// CommonStack is the middleware every API route runs through, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Throttle(o.MaxInFlight, o.Backlog, o.Timeout),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
