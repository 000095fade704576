// Package middleware provides request middleware for the schema server.
//
// Each middleware wraps the next handler in the chain:
//
//	chain := middleware.Chain(
//	    middleware.Recover(),
//	    middleware.RequestID(),
//	    middleware.Logging(logger),
//	)
//	handler := chain(baseHandler)
//
// # Available Middleware
//
//   - Recover: converts panics to internal errors
//   - RequestID: attaches a UUID to each request context
//   - Timeout: bounds request duration
//   - Logging: logs method, duration and tool name
//   - OTel: OpenTelemetry spans and request metrics
//   - RateLimit, RateLimitByMethod: token-bucket throttling
//
// DefaultStack and DefaultStackWithTimeout return the production stack.
package middleware
