// Package convert renders synthesized schemas in the shapes other
// libraries expect: OpenAI function tools, google/jsonschema-go schemas
// and plain maps.
package convert
