package server

import (
	"sync"

	"github.com/felixgeelhaar/docschema/introspect"
	"github.com/felixgeelhaar/docschema/schema"
)

// Info contains server metadata exposed to clients.
type Info struct {
	Name    string
	Version string
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string
	Description string
	InputSchema *schema.Schema
}

// Option configures a Server.
type Option func(*Server)

// WithSchemaOptions applies opts to every schema the server synthesizes.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(s *Server) {
		s.schemaOpts = append(s.schemaOpts, opts...)
	}
}

// Server is a registry of tools and their input schemas.
type Server struct {
	mu sync.RWMutex

	info       Info
	tools      map[string]*Tool
	order      []string
	schemaOpts []schema.Option
}

// New creates a server with the given info and options.
func New(info Info, opts ...Option) *Server {
	s := &Server{
		info:  info,
		tools: make(map[string]*Tool),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Info returns the server info.
func (s *Server) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Tool starts building a new tool with the given name.
func (s *Server) Tool(name string) *ToolBuilder {
	return &ToolBuilder{
		tool: &Tool{
			name: name,
		},
		server: s,
	}
}

// RegisterFunc registers a declaration-only tool for a parsed function.
// The first line of its doc comment becomes the tool description.
func (s *Server) RegisterFunc(fn introspect.Func) error {
	return s.Tool(fn.Name).
		Description(fn.Summary()).
		Doc(fn.Doc).
		Declare(fn.Params...).
		Err()
}

// Tools returns info about all registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		t := s.tools[name]
		result = append(result, ToolInfo{
			Name:        t.name,
			Description: t.description,
			InputSchema: t.inputSchema,
		})
	}
	return result
}

// GetTool retrieves a tool by name.
func (s *Server) GetTool(name string) (*Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tools[name]
	return t, ok
}

// registerTool adds t, replacing any tool with the same name in place.
func (s *Server) registerTool(t *Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tools[t.name]; !exists {
		s.order = append(s.order, t.name)
	}
	s.tools[t.name] = t
}

func (s *Server) synthesize(params []schema.Param, doc string) *schema.Schema {
	s.mu.RLock()
	opts := s.schemaOpts
	s.mu.RUnlock()
	return schema.Synthesize(params, doc, opts...)
}
