// Package docschema publishes JSON Schemas synthesized from parameter lists
// and doc comments.
//
// Tools are registered on a Server, either declared from an explicit
// parameter list, backed by a typed handler, or parsed from Go source:
//
//	srv := docschema.NewServer(docschema.ServerInfo{
//	    Name:    "images",
//	    Version: "1.0.0",
//	})
//
//	funcs, _ := introspect.ParseFile("images.go")
//	for _, fn := range funcs {
//	    _ = srv.RegisterFunc(fn)
//	}
//
//	docschema.ServeStdio(ctx, srv, docschema.WithLogger(logger))
//
// Clients read the schemas with tools/list and may call tools that have
// handlers with tools/call.
package docschema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/docschema/middleware"
	"github.com/felixgeelhaar/docschema/protocol"
	"github.com/felixgeelhaar/docschema/server"
	"github.com/felixgeelhaar/docschema/transport"
)

// ServerInfo contains server metadata exposed to clients.
type ServerInfo = server.Info

// Server is the tool registry.
type Server = server.Server

// Option configures a Server.
type Option = server.Option

// Middleware types
type Middleware = middleware.Middleware
type Logger = middleware.Logger
type LogField = middleware.Field

// WithSchemaOptions applies schema options to every tool of a server.
var WithSchemaOptions = server.WithSchemaOptions

// ServeOption configures how the server is run.
type ServeOption func(*serveOptions)

type serveOptions struct {
	middleware []Middleware
	logger     Logger
	wsOpts     []transport.WebSocketOption
}

// WithMiddleware adds middleware to the request handling chain.
func WithMiddleware(m ...Middleware) ServeOption {
	return func(o *serveOptions) {
		o.middleware = append(o.middleware, m...)
	}
}

// WithLogger installs the default middleware stack logging to l, ahead of
// any middleware added with WithMiddleware.
func WithLogger(l Logger) ServeOption {
	return func(o *serveOptions) {
		o.logger = l
	}
}

// WithWebSocketOptions configures the transport used by ServeWebSocket.
func WithWebSocketOptions(opts ...transport.WebSocketOption) ServeOption {
	return func(o *serveOptions) {
		o.wsOpts = append(o.wsOpts, opts...)
	}
}

// NewServer creates a new server with the given info and options.
func NewServer(info ServerInfo, opts ...Option) *Server {
	return server.New(info, opts...)
}

// NewHandler returns the JSON-RPC handler for srv with middleware applied.
func NewHandler(srv *Server, opts ...ServeOption) transport.Handler {
	return newRequestHandler(srv, newServeOptions(opts))
}

// ServeStdio serves srv over stdin/stdout until EOF or ctx is canceled.
func ServeStdio(ctx context.Context, srv *Server, opts ...ServeOption) error {
	options := newServeOptions(opts)
	return transport.NewStdio().Serve(ctx, newRequestHandler(srv, options))
}

// ServeWebSocket serves srv over WebSocket on addr until ctx is canceled.
func ServeWebSocket(ctx context.Context, srv *Server, addr string, opts ...ServeOption) error {
	options := newServeOptions(opts)
	t := transport.NewWebSocket(addr, options.wsOpts...)
	return t.Serve(ctx, newRequestHandler(srv, options))
}

func newServeOptions(opts []ServeOption) *serveOptions {
	options := &serveOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// requestHandler adapts Server to transport.Handler.
type requestHandler struct {
	srv        *Server
	handleFunc middleware.HandlerFunc
}

func newRequestHandler(srv *Server, options *serveOptions) *requestHandler {
	h := &requestHandler{srv: srv}

	var stack []Middleware
	if options.logger != nil {
		stack = append(stack, middleware.DefaultStack(options.logger)...)
	}
	stack = append(stack, options.middleware...)

	h.handleFunc = middleware.Chain(stack...)(h.handle)
	return h
}

func (h *requestHandler) HandleRequest(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	return h.handleFunc(ctx, req)
}

func (h *requestHandler) handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	switch req.Method {
	case protocol.MethodInitialize:
		return h.handleInitialize(req)
	case protocol.MethodInitialized:
		return nil, nil
	case protocol.MethodToolsList:
		return h.handleToolsList(ctx, req)
	case protocol.MethodToolsCall:
		return h.handleToolsCall(ctx, req)
	case protocol.MethodPing:
		return protocol.NewResponse(req.ID, map[string]any{}), nil
	default:
		return nil, protocol.NewMethodNotFound(req.Method)
	}
}

func (h *requestHandler) handleInitialize(req *protocol.Request) (*protocol.Response, error) {
	info := h.srv.Info()
	return protocol.NewResponse(req.ID, protocol.InitializeResult{
		ProtocolVersion: protocol.MCPVersion,
		ServerInfo: protocol.ServerInfo{
			Name:    info.Name,
			Version: info.Version,
		},
		Capabilities: map[string]any{
			"tools": map[string]any{},
		},
	}), nil
}

func (h *requestHandler) handleToolsList(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	tools := h.srv.Tools()

	result := protocol.ToolsListResult{Tools: make([]protocol.Tool, 0, len(tools))}
	for _, t := range tools {
		result.Tools = append(result.Tools, protocol.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}

	middleware.AddSpanEvent(ctx, "tools.listed", attribute.Int("count", len(tools)))
	return protocol.NewResponse(req.ID, result), nil
}

func (h *requestHandler) handleToolsCall(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	var params protocol.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, protocol.NewInvalidParams(err.Error())
	}
	if params.Name == "" {
		return nil, protocol.NewInvalidParams("missing tool name")
	}

	tool, ok := h.srv.GetTool(params.Name)
	if !ok {
		return nil, protocol.NewNotFound("tool not found: " + params.Name)
	}

	result, err := tool.Execute(ctx, params.Arguments)
	if err != nil {
		var rpcErr *protocol.Error
		if errors.As(err, &rpcErr) {
			return nil, rpcErr
		}
		return protocol.NewResponse(req.ID, protocol.CallToolResult{
			Content: []protocol.TextContent{{Type: "text", Text: err.Error()}},
			IsError: true,
		}), nil
	}

	text, err := formatResult(result)
	if err != nil {
		return nil, protocol.NewInternalError(err.Error())
	}

	return protocol.NewResponse(req.ID, protocol.CallToolResult{
		Content: []protocol.TextContent{{Type: "text", Text: text}},
	}), nil
}

// formatResult renders a handler result as text. Strings pass through,
// everything else is encoded as JSON.
func formatResult(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}
