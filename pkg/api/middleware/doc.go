// Package middleware provides the HTTP middleware chain for the algoviz API.
//
// Every middleware has the shape func(http.Handler) http.Handler, so a
// chain reads inside out:
//
//	handler := middleware.Metrics(reg)(mux)
//	handler = middleware.RateLimit(limiter, middleware.ClientIP(nil), nil)(handler)
//	handler = middleware.BodySizeLimit(1 << 20)(handler)
//	handler = middleware.CORS(cors)(handler)
//	handler = middleware.SecurityHeaders(nil)(handler)
//	handler = middleware.Logging(logger)(handler)
//	handler = middleware.RequestID()(handler)
//	handler = middleware.PanicRecovery(logger)(handler)
//
// Metrics must wrap the mux directly so the matched route pattern is
// visible after the request is served.
package middleware
