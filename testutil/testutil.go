// Package testutil drives a transport.Handler the way a JSON-RPC client
// would, with every request and response passing through JSON.
//
//	func TestImages(t *testing.T) {
//	    srv := docschema.NewServer(docschema.ServerInfo{Name: "images"})
//	    srv.Tool("resize").Declare(schema.Param{Name: "width", Kind: schema.KindInt})
//
//	    tc := testutil.NewTestClient(t, docschema.NewHandler(srv))
//	    tools, err := tc.ListTools()
//	    ...
//	}
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/felixgeelhaar/docschema/protocol"
	"github.com/felixgeelhaar/docschema/transport"
)

// ErrEmptyContent is returned by CallTool when the result has no content.
var ErrEmptyContent = errors.New("empty content")

// ToolError is returned by CallTool when the tool reported a failure.
type ToolError struct {
	Text string
}

func (e *ToolError) Error() string {
	return "tool error: " + e.Text
}

// TestClient is an in-memory client for a transport.Handler.
type TestClient struct {
	t       testing.TB
	handler transport.Handler
	ctx     context.Context

	mu    sync.Mutex
	reqID int64
}

// NewTestClient creates a client sending requests to handler.
func NewTestClient(t testing.TB, handler transport.Handler) *TestClient {
	t.Helper()
	return &TestClient{
		t:       t,
		handler: handler,
		ctx:     context.Background(),
	}
}

// WithContext returns a copy of tc that sends requests with ctx.
func (tc *TestClient) WithContext(ctx context.Context) *TestClient {
	return &TestClient{t: tc.t, handler: tc.handler, ctx: ctx}
}

func (tc *TestClient) nextID() json.RawMessage {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.reqID++
	return json.RawMessage(strconv.FormatInt(tc.reqID, 10))
}

// SendRequest sends method with params and returns the raw result.
// JSON-RPC errors are returned as *protocol.Error.
func (tc *TestClient) SendRequest(method string, params any) (json.RawMessage, error) {
	tc.t.Helper()

	var paramsData json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshal params: %w", err)
		}
		paramsData = data
	}

	req := &protocol.Request{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      tc.nextID(),
		Method:  method,
		Params:  paramsData,
	}

	resp, err := tc.handler.HandleRequest(tc.ctx, req)
	if err != nil {
		var rpcErr *protocol.Error
		if errors.As(err, &rpcErr) {
			return nil, rpcErr
		}
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%s: no response", method)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	var wire struct {
		Result json.RawMessage `json:"result"`
		Error  *protocol.Error `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if wire.Error != nil {
		return nil, wire.Error
	}
	return wire.Result, nil
}

func (tc *TestClient) call(method string, params any, out any) error {
	tc.t.Helper()

	result, err := tc.SendRequest(method, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("%s: unmarshal result: %w", method, err)
	}
	return nil
}

// Initialize sends an initialize request.
func (tc *TestClient) Initialize() (*protocol.InitializeResult, error) {
	tc.t.Helper()

	var result protocol.InitializeResult
	err := tc.call(protocol.MethodInitialize, map[string]any{
		"protocolVersion": protocol.MCPVersion,
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "1.0.0",
		},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTools returns the tools/list result. Schema properties keep the
// order they had on the wire.
func (tc *TestClient) ListTools() ([]protocol.Tool, error) {
	tc.t.Helper()

	var result protocol.ToolsListResult
	if err := tc.call(protocol.MethodToolsList, nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool calls a tool and returns the text of its first content block.
// A result flagged as an error is returned as *ToolError.
func (tc *TestClient) CallTool(name string, args any) (string, error) {
	tc.t.Helper()

	var result protocol.CallToolResult
	err := tc.call(protocol.MethodToolsCall, map[string]any{
		"name":      name,
		"arguments": args,
	}, &result)
	if err != nil {
		return "", err
	}
	if len(result.Content) == 0 {
		return "", ErrEmptyContent
	}
	if result.IsError {
		return "", &ToolError{Text: result.Content[0].Text}
	}
	return result.Content[0].Text, nil
}

// Ping sends a ping request.
func (tc *TestClient) Ping() error {
	tc.t.Helper()

	_, err := tc.SendRequest(protocol.MethodPing, nil)
	return err
}
