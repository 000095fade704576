package introspect

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/felixgeelhaar/docschema/schema"
)

const sample = `package sample

import "context"

// Resize scales an image.
//
// width: target width in pixels
// height: target height in pixels
// keepRatio: preserve the aspect ratio
func Resize(width, height int, keepRatio bool) error { return nil }

// Search queries the index.
// query: text to search for
func Search(ctx context.Context, query string, tags ...string) ([]string, error) {
	return nil, nil
}

// Scale multiplies a value.
// factor: multiplier
func (c *Calc) Scale(factor float64, opts map[string]any) float64 { return 0 }

func undocumented(id uint64, raw []byte) {}

type Calc struct{}
`

func TestParseSource(t *testing.T) {
	funcs, err := ParseSource("sample.go", sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, f := range funcs {
		names = append(names, f.Name)
	}
	wantNames := []string{"Resize", "Search", "Calc.Scale", "undocumented"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Fatalf("names = %v, want %v", names, wantNames)
	}

	t.Run("expands grouped parameters", func(t *testing.T) {
		want := []schema.Param{
			{Name: "width", Kind: schema.KindInt},
			{Name: "height", Kind: schema.KindInt},
			{Name: "keepRatio", Kind: schema.KindBool},
		}
		if !reflect.DeepEqual(funcs[0].Params, want) {
			t.Errorf("Params = %+v, want %+v", funcs[0].Params, want)
		}
	})

	t.Run("skips context and marks variadic as defaulted", func(t *testing.T) {
		want := []schema.Param{
			{Name: "query", Kind: schema.KindString},
			{Name: "tags", Kind: schema.Kind("...string"), HasDefault: true},
		}
		if !reflect.DeepEqual(funcs[1].Params, want) {
			t.Errorf("Params = %+v, want %+v", funcs[1].Params, want)
		}
	})

	t.Run("keeps composite type text", func(t *testing.T) {
		want := []schema.Param{
			{Name: "factor", Kind: schema.KindFloat},
			{Name: "opts", Kind: schema.Kind("map[string]any")},
		}
		if !reflect.DeepEqual(funcs[2].Params, want) {
			t.Errorf("Params = %+v, want %+v", funcs[2].Params, want)
		}
	})

	t.Run("captures doc comment text", func(t *testing.T) {
		want := "Resize scales an image.\n\nwidth: target width in pixels\nheight: target height in pixels\nkeepRatio: preserve the aspect ratio\n"
		if funcs[0].Doc != want {
			t.Errorf("Doc = %q, want %q", funcs[0].Doc, want)
		}
		if funcs[3].Doc != "" {
			t.Errorf("Doc = %q, want empty", funcs[3].Doc)
		}
	})

	t.Run("summary is first doc line", func(t *testing.T) {
		if got := funcs[0].Summary(); got != "Resize scales an image." {
			t.Errorf("Summary() = %q, want %q", got, "Resize scales an image.")
		}
		if got := funcs[3].Summary(); got != "" {
			t.Errorf("Summary() = %q, want empty", got)
		}
	})
}

func TestFunc_Schema(t *testing.T) {
	funcs, err := ParseSource("sample.go", sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := funcs[1].Schema()

	if !reflect.DeepEqual(s.Required, []string{"query"}) {
		t.Errorf("Required = %v, want [query]", s.Required)
	}
	q, _ := s.Property("query")
	if q.Description != "text to search for" {
		t.Errorf("query.Description = %q, want %q", q.Description, "text to search for")
	}
	tags, _ := s.Property("tags")
	if tags.Type != schema.TypeString {
		t.Errorf("tags.Type = %q, want %q", tags.Type, schema.TypeString)
	}
}

func TestParseSource_NamedTypes(t *testing.T) {
	src := `package units

type Celsius float64

type float struct{}

func Heat(target Celsius, mode float, err error) {}
`
	funcs, err := ParseSource("units.go", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []schema.Param{
		{Name: "target", Kind: schema.Kind("units.Celsius")},
		{Name: "mode", Kind: schema.Kind("units.float")},
		{Name: "err", Kind: schema.Kind("error")},
	}
	if !reflect.DeepEqual(funcs[0].Params, want) {
		t.Errorf("Params = %+v, want %+v", funcs[0].Params, want)
	}

	s := funcs[0].Schema()
	for _, name := range []string{"target", "mode"} {
		if p, _ := s.Property(name); p.Type != schema.TypeString {
			t.Errorf("%s.Type = %q, want %q", name, p.Type, schema.TypeString)
		}
	}
}

func TestParseSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "unnamed parameter",
			src:  "package p\nfunc F(int) {}\n",
			want: ErrUnnamedParam,
		},
		{
			name: "blank parameter",
			src:  "package p\nfunc F(_ int, b string) {}\n",
			want: ErrUnnamedParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("p.go", tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		if _, err := ParseSource("p.go", "package p\nfunc {"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.go")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	funcs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(funcs) != 4 {
		t.Errorf("expected 4 funcs, got %d", len(funcs))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.go")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLookup(t *testing.T) {
	funcs := []Func{{Name: "A"}, {Name: "B"}}

	f, err := Lookup(funcs, "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name != "B" {
		t.Errorf("Name = %q, want %q", f.Name, "B")
	}

	if _, err := Lookup(funcs, "C"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
