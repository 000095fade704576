package transport

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/felixgeelhaar/docschema/protocol"
)

// Handler processes incoming JSON-RPC requests.
type Handler interface {
	HandleRequest(ctx context.Context, req *protocol.Request) (*protocol.Response, error)
}

// HandlerFunc is an adapter to allow ordinary functions as handlers.
type HandlerFunc func(ctx context.Context, req *protocol.Request) (*protocol.Response, error)

// HandleRequest calls f(ctx, req).
func (f HandlerFunc) HandleRequest(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	return f(ctx, req)
}

// Transport defines the communication layer interface.
type Transport interface {
	// Serve starts the transport, blocking until ctx is canceled or an error occurs.
	Serve(ctx context.Context, handler Handler) error

	// Addr returns the transport's address description.
	Addr() string
}

// dispatch decodes one message, runs handler and returns the response to
// write back, or nil for notifications.
func dispatch(ctx context.Context, handler Handler, message []byte) *protocol.Response {
	var req protocol.Request
	if err := json.Unmarshal(message, &req); err != nil {
		return protocol.NewErrorResponse(nil, protocol.NewParseError(err.Error()))
	}

	resp, err := handler.HandleRequest(ctx, &req)

	if req.IsNotification() {
		return nil
	}

	if err != nil {
		var rpcErr *protocol.Error
		if errors.As(err, &rpcErr) {
			return protocol.NewErrorResponse(req.ID, rpcErr)
		}
		return protocol.NewErrorResponse(req.ID, protocol.NewInternalError(err.Error()))
	}
	return resp
}
