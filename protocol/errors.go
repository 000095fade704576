package protocol

import "fmt"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Codes in the implementation-defined server range.
const (
	CodeNotFound    = -32001
	CodeRateLimited = -32003
)

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("docschema: %s (code: %d)", e.Message, e.Code)
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithData returns a copy of e carrying data; e is left unchanged.
func (e *Error) WithData(data any) *Error {
	out := *e
	out.Data = data
	return &out
}

func newError(code int, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Constructors for each code. The message is sent to the client verbatim.

func NewParseError(msg string) *Error     { return newError(CodeParseError, msg) }
func NewInvalidRequest(msg string) *Error { return newError(CodeInvalidRequest, msg) }
func NewMethodNotFound(msg string) *Error { return newError(CodeMethodNotFound, msg) }
func NewInvalidParams(msg string) *Error  { return newError(CodeInvalidParams, msg) }
func NewInternalError(msg string) *Error  { return newError(CodeInternalError, msg) }

// NewNotFound reports an unknown tool name in tools/call.
func NewNotFound(msg string) *Error { return newError(CodeNotFound, msg) }

// NewRateLimited is returned by the rate limit middleware.
func NewRateLimited(msg string) *Error { return newError(CodeRateLimited, msg) }
