package convert

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared/constant"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/felixgeelhaar/docschema/schema"
)

// ToMap returns s as nested maps. Go maps do not keep property order;
// use the Schema itself when order matters.
func ToMap(s *schema.Schema) map[string]any {
	props := make(map[string]any, s.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop := map[string]any{"type": string(pair.Value.Type)}
		if pair.Value.HasDescription || pair.Value.Description != "" {
			prop["description"] = pair.Value.Description
		}
		props[pair.Key] = prop
	}

	return map[string]any{
		"type":       s.Type,
		"properties": props,
		"required":   append([]string{}, s.Required...),
	}
}

// ToOpenAITool builds a chat completion function tool whose parameters
// are s. Parameter properties keep declaration order when encoded.
// An empty tool description is left unset.
func ToOpenAITool(name, description string, s *schema.Schema) openai.ChatCompletionToolUnionParam {
	props := orderedmap.New[string, schema.Property](s.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props.Set(pair.Key, pair.Value)
	}

	function := openai.FunctionDefinitionParam{
		Name: name,
		Parameters: openai.FunctionParameters{
			"type":       s.Type,
			"properties": props,
			"required":   append([]string{}, s.Required...),
		},
	}
	if description != "" {
		function.Description = openai.String(description)
	}

	return openai.ChatCompletionToolUnionParam{
		OfFunction: &openai.ChatCompletionFunctionToolParam{
			Function: function,
			Type:     constant.ValueOf[constant.Function](),
		},
	}
}

// ToJSONSchema converts s to a jsonschema.Schema.
//
// jsonschema.Schema holds properties in a Go map, so the encoded
// "properties" object is key-sorted. Required keeps declaration order.
// An empty description is indistinguishable from none.
func ToJSONSchema(s *schema.Schema) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:       s.Type,
		Properties: make(map[string]*jsonschema.Schema, s.Len()),
		Required:   append([]string{}, s.Required...),
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		out.Properties[pair.Key] = &jsonschema.Schema{
			Type:        string(pair.Value.Type),
			Description: pair.Value.Description,
		}
	}
	return out
}
