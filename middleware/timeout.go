package middleware

import (
	"context"
	"time"

	"github.com/felixgeelhaar/docschema/protocol"
)

// Timeout returns middleware that bounds each request by d.
func Timeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, req)
		}
	}
}
