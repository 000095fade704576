package schema

import (
	"reflect"
	"testing"
)

func TestExtractDescriptions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Descriptions
	}{
		{
			name: "empty doc",
			doc:  "",
			want: Descriptions{},
		},
		{
			name: "single line",
			doc:  "count: number of items\n",
			want: Descriptions{"count": "number of items"},
		},
		{
			name: "leading whitespace and padding",
			doc:  "\n\t  limit:    max results   \n",
			want: Descriptions{"limit": "max results"},
		},
		{
			name: "final line without newline is dropped",
			doc:  "a: first\nb: second",
			want: Descriptions{"a": "first"},
		},
		{
			name: "only final line",
			doc:  "a: first",
			want: Descriptions{},
		},
		{
			name: "last duplicate wins",
			doc:  "x: old\nx: new\n",
			want: Descriptions{"x": "new"},
		},
		{
			name: "scans outside parameter sections",
			doc:  "Fetch a page.\n\nArgs:\n    url: address to fetch\nReturns:\n    body: the page text\n",
			want: Descriptions{
				"Args":    "",
				"url":     "address to fetch",
				"Returns": "",
				"body":    "the page text",
			},
		},
		{
			name: "section header does not absorb the next line",
			doc:  "Args:\n    count: number\n",
			want: Descriptions{"Args": "", "count": "number"},
		},
		{
			name: "matches fragment inside a line",
			doc:  "Note that timeout: seconds to wait\n",
			want: Descriptions{"timeout": "seconds to wait"},
		},
		{
			name: "first colon wins within a line",
			doc:  "see: http://example.com\n",
			want: Descriptions{"see": "http://example.com"},
		},
		{
			name: "colon without identifier is skipped",
			doc:  " : nothing\n-- : also nothing\n",
			want: Descriptions{},
		},
		{
			name: "space before colon breaks identifier",
			doc:  "name : the name\n",
			want: Descriptions{},
		},
		{
			name: "underscore and digits in identifier",
			doc:  "max_retries2: retry budget\n",
			want: Descriptions{"max_retries2": "retry budget"},
		},
		{
			name: "unicode identifier",
			doc:  "größe: size in bytes\n",
			want: Descriptions{"größe": "size in bytes"},
		},
		{
			name: "carriage returns are trimmed",
			doc:  "path: file path\r\n",
			want: Descriptions{"path": "file path"},
		},
		{
			name: "no match without colon",
			doc:  "just prose\nmore prose\n",
			want: Descriptions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDescriptions(tt.doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractDescriptions(%q) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestExtract_TrailingLine(t *testing.T) {
	got := extract("a: first\nb: second", true)
	want := Descriptions{"a": "first", "b": "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extract() = %v, want %v", got, want)
	}

	got = extract("a: first\n", true)
	want = Descriptions{"a": "first"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extract() = %v, want %v", got, want)
	}
}
