// Package schema synthesizes JSON Schema objects from parameter lists and doc comments.
//
// A callable is described by its ordered parameters and its free-form
// documentation. The package turns that pair into a JSON Schema "object"
// fragment suitable for tool-calling interfaces.
//
// # Basic Usage
//
//	params := []schema.Param{
//	    {Name: "count", Kind: schema.KindInt},
//	    {Name: "name", Kind: schema.KindString, HasDefault: true},
//	}
//	doc := "count: number of items\nname: the label\n"
//
//	s := schema.Synthesize(params, doc)
//	data, _ := json.Marshal(s)
//	// {"type":"object","properties":{"count":{"type":"integer","description":"number of items"},
//	//  "name":{"type":"string","description":"the label"}},"required":["count"]}
//
// # Descriptions
//
// Descriptions come from lines of the form
//
//	name: a single-line description
//
// anywhere in the documentation. Only newline-terminated lines are scanned;
// pass WithUnterminatedLastLine to include a final line without a newline.
//
// # Types
//
// Declared kinds map to JSON Schema types:
//
//   - KindInt: "integer"
//   - KindFloat: "number"
//   - KindBool: "boolean"
//   - anything else, including KindNone and composite annotations: "string"
//
// WithTypeMapper swaps in a richer mapping for a single call.
//
// # Required Fields
//
// A parameter is required iff it has no default value. Required preserves
// declaration order.
package schema
