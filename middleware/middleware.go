package middleware

import "time"

// DefaultStack returns Recover, RequestID and Logging, in that order.
func DefaultStack(logger Logger) []Middleware {
	return []Middleware{
		Recover(),
		RequestID(),
		Logging(logger),
	}
}

// DefaultStackWithTimeout is DefaultStack with a per-request deadline.
// A non-positive timeout leaves requests unbounded.
func DefaultStackWithTimeout(logger Logger, timeout time.Duration) []Middleware {
	if timeout <= 0 {
		return DefaultStack(logger)
	}
	return []Middleware{
		Recover(),
		RequestID(),
		Timeout(timeout),
		Logging(logger),
	}
}
