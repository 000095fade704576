package protocol

// MCPVersion is reported in the initialize result.
const MCPVersion = "2024-11-05"

// JSON-RPC methods the root handler routes. Anything else gets
// CodeMethodNotFound.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
	MethodPing        = "ping"
)
