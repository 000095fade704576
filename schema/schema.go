package schema

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Type is a JSON Schema primitive type name.
type Type string

// Output primitive types.
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

const typeObject = "object"

// Kind is the declared type of a parameter as reported by the host.
// Values outside the named constants carry the verbatim annotation text
// of a type the synthesizer does not recognize (e.g. "[]string").
type Kind string

// Declared type kinds.
const (
	KindNone   Kind = ""
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
)

// Param describes one parameter of a callable.
type Param struct {
	Name       string
	Kind       Kind
	HasDefault bool
}

// Property is the schema entry for a single parameter.
//
// HasDescription records that a doc line named the parameter, so an empty
// description ("x:") still marshals as "description": "".
type Property struct {
	Type           Type
	Description    string
	HasDescription bool
}

type propertyJSON struct {
	Type        Type    `json:"type"`
	Description *string `json:"description,omitempty"`
}

// MarshalJSON omits "description" only when no doc line named the parameter.
func (p Property) MarshalJSON() ([]byte, error) {
	out := propertyJSON{Type: p.Type}
	if p.HasDescription || p.Description != "" {
		out.Description = &p.Description
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var in propertyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Property{Type: in.Type}
	if in.Description != nil {
		p.Description = *in.Description
		p.HasDescription = true
	}
	return nil
}

// Schema is a JSON Schema "object" fragment describing a callable's inputs.
// Properties iterate and marshal in parameter declaration order.
type Schema struct {
	Type       string                                 `json:"type"`
	Properties *orderedmap.OrderedMap[string, Property] `json:"properties"`
	Required   []string                               `json:"required"`
}

func newSchema(size int) *Schema {
	return &Schema{
		Type:       typeObject,
		Properties: orderedmap.New[string, Property](size),
		Required:   []string{},
	}
}

// Property returns the property for name.
func (s *Schema) Property(name string) (Property, bool) {
	return s.Properties.Get(name)
}

// Names returns property names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of properties.
func (s *Schema) Len() int {
	return s.Properties.Len()
}

// IsRequired reports whether name is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Synthesize builds the schema for params, attaching descriptions found in doc.
//
// Every param yields exactly one property, keyed by name, in declaration order.
// A param is required iff it has no default. Unknown kinds fall back to
// TypeString. A param named by a doc line gets that line's description, even
// when it is empty; other params get none.
func Synthesize(params []Param, doc string, opts ...Option) *Schema {
	cfg := newConfig(opts)
	descriptions := extract(doc, cfg.trailingLine)

	s := newSchema(len(params))
	for _, p := range params {
		prop := Property{Type: cfg.mapType(p.Kind)}
		if desc, ok := descriptions[p.Name]; ok {
			prop.Description = desc
			prop.HasDescription = true
		}
		s.Properties.Set(p.Name, prop)

		if !p.HasDefault {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}
