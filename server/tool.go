package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/felixgeelhaar/docschema/introspect"
	"github.com/felixgeelhaar/docschema/protocol"
	"github.com/felixgeelhaar/docschema/schema"
)

// ErrEmptyName is returned when a tool is registered without a name.
var ErrEmptyName = errors.New("tool name is empty")

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Tool is a named input schema, optionally backed by a handler.
type Tool struct {
	name        string
	description string
	doc         string
	params      []schema.Param
	inputSchema *schema.Schema

	handler    reflect.Value
	inputType  reflect.Type
	inputIsPtr bool
	hasContext bool
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.name }

// Schema returns the synthesized input schema.
func (t *Tool) Schema() *schema.Schema { return t.inputSchema }

// HasHandler reports whether the tool can be executed.
func (t *Tool) HasHandler() bool { return t.handler.IsValid() }

// ToolBuilder provides a fluent API for building tools.
// Description and Doc must be set before Declare or Handler,
// which synthesize the schema and register the tool.
type ToolBuilder struct {
	tool   *Tool
	server *Server
	err    error
}

// Description sets the tool description. When unset, the first line of
// the doc string is used.
func (b *ToolBuilder) Description(desc string) *ToolBuilder {
	if b.err != nil {
		return b
	}
	b.tool.description = desc
	return b
}

// Doc sets the doc string that parameter descriptions are read from.
func (b *ToolBuilder) Doc(doc string) *ToolBuilder {
	if b.err != nil {
		return b
	}
	b.tool.doc = doc
	return b
}

// Declare registers a tool that publishes a schema for params but cannot
// be called.
func (b *ToolBuilder) Declare(params ...schema.Param) *ToolBuilder {
	if b.err != nil {
		return b
	}
	b.tool.params = params
	b.register()
	return b
}

// Handler sets the tool handler function and registers the tool.
// Handler signature must be one of:
//   - func(input T) (R, error)
//   - func(ctx context.Context, input T) (R, error)
//
// T must be a struct or pointer to struct. Its fields become the
// schema parameters.
func (b *ToolBuilder) Handler(fn any) *ToolBuilder {
	if b.err != nil {
		return b
	}

	if err := b.bindHandler(fn); err != nil {
		b.err = fmt.Errorf("tool %s: %w", b.tool.name, err)
		return b
	}

	b.register()
	return b
}

// Err returns the first error encountered while building the tool.
func (b *ToolBuilder) Err() error {
	return b.err
}

func (b *ToolBuilder) register() {
	if b.tool.name == "" {
		b.err = ErrEmptyName
		return
	}

	t := *b.tool
	t.inputSchema = b.server.synthesize(t.params, t.doc)
	if t.description == "" {
		t.description = introspect.Func{Doc: t.doc}.Summary()
	}
	b.server.registerTool(&t)
}

func (b *ToolBuilder) bindHandler(fn any) error {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return fmt.Errorf("handler must be a function, got %T", fn)
	}

	numIn := fnType.NumIn()
	if numIn < 1 || numIn > 2 {
		return fmt.Errorf("handler must have 1 or 2 parameters, got %d", numIn)
	}

	inputIdx := 0
	if numIn == 2 {
		if !fnType.In(0).Implements(contextType) {
			return errors.New("first parameter must be context.Context when using 2 parameters")
		}
		b.tool.hasContext = true
		inputIdx = 1
	}

	if fnType.NumOut() != 2 {
		return fmt.Errorf("handler must return (result, error), got %d return values", fnType.NumOut())
	}
	if !fnType.Out(1).Implements(errorType) {
		return errors.New("second return value must be error")
	}

	inputType := fnType.In(inputIdx)
	if inputType.Kind() == reflect.Ptr {
		b.tool.inputIsPtr = true
		inputType = inputType.Elem()
	}

	params, err := introspect.FromStruct(inputType)
	if err != nil {
		return err
	}

	b.tool.inputType = inputType
	b.tool.params = params
	b.tool.handler = reflect.ValueOf(fn)
	return nil
}

// Execute decodes input into the handler's input type and calls it.
// Declaration-only tools return an invalid request error.
func (t *Tool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	if !t.HasHandler() {
		return nil, protocol.NewInvalidRequest(fmt.Sprintf("tool %s is declaration-only", t.name))
	}

	inputPtr := reflect.New(t.inputType)
	if len(input) > 0 {
		if err := json.Unmarshal(input, inputPtr.Interface()); err != nil {
			return nil, protocol.NewInvalidParams(fmt.Sprintf("failed to parse input: %v", err))
		}
	}

	var args []reflect.Value
	if t.hasContext {
		args = append(args, reflect.ValueOf(ctx))
	}
	if t.inputIsPtr {
		args = append(args, inputPtr)
	} else {
		args = append(args, inputPtr.Elem())
	}

	results := t.handler.Call(args)

	if err, _ := results[1].Interface().(error); err != nil {
		return nil, err
	}
	return results[0].Interface(), nil
}
