package schema_test

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/docschema/schema"
)

func ExampleSynthesize() {
	params := []schema.Param{
		{Name: "count", Kind: schema.KindInt},
		{Name: "name", Kind: schema.KindString, HasDefault: true},
	}
	doc := "count: number of items\nname: the label\n"

	data, _ := json.Marshal(schema.Synthesize(params, doc))
	fmt.Println(string(data))
	// Output: {"type":"object","properties":{"count":{"type":"integer","description":"number of items"},"name":{"type":"string","description":"the label"}},"required":["count"]}
}

func ExampleExtractDescriptions() {
	doc := "Resize an image.\n\n    width: target width in pixels\n    height: target height in pixels"

	d := schema.ExtractDescriptions(doc)
	fmt.Println(len(d), d["width"])
	// Output: 1 target width in pixels
}
