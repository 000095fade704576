// Package protocol defines the JSON-RPC 2.0 messages used to publish
// synthesized tool schemas.
//
// # Methods
//
//	MethodInitialize = "initialize"
//	MethodToolsList  = "tools/list"
//	MethodToolsCall  = "tools/call"
//	MethodPing       = "ping"
//
// A tools/list result carries each tool's synthesized input schema:
//
//	{"tools":[{"name":"resize","description":"Resize scales an image.",
//	  "inputSchema":{"type":"object","properties":{...},"required":[...]}}]}
//
// # Error Codes
//
// Standard JSON-RPC 2.0 error codes are defined as constants, plus
// CodeNotFound for unknown tools and CodeRateLimited for throttled requests.
// Errors compare with errors.Is by code:
//
//	errors.Is(err, protocol.NewNotFound(""))
package protocol
