// Package transport carries JSON-RPC requests to a Handler.
//
// # Stdio Transport
//
// One request per line on stdin, one response per line on stdout:
//
//	t := transport.NewStdio()
//	err := t.Serve(ctx, handler)
//
// # WebSocket Transport
//
// One request per text frame. Serve listens on its own address; HTTPHandler
// mounts the upgrade endpoint on an existing mux:
//
//	t := transport.NewWebSocket(":8080",
//	    transport.WithWebSocketReadTimeout(time.Minute),
//	)
//	err := t.Serve(ctx, handler)
//
// Notifications (requests without an ID) are handled but never answered.
// Handler errors that are not *protocol.Error are reported as internal errors.
package transport
