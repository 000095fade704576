package introspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"strings"

	"github.com/felixgeelhaar/docschema/schema"
)

// Errors returned when a callable cannot be described.
var (
	ErrNotFound       = errors.New("function not found")
	ErrNotStruct      = errors.New("type is not a struct")
	ErrUnnamedParam   = errors.New("parameter has no name")
	ErrDuplicateParam = errors.New("duplicate parameter name")
)

// Func is a parsed function declaration.
type Func struct {
	Name   string
	Doc    string
	Params []schema.Param
}

// Schema synthesizes the input schema of f.
func (f Func) Schema(opts ...schema.Option) *schema.Schema {
	return schema.Synthesize(f.Params, f.Doc, opts...)
}

// Summary returns the first line of the doc comment.
func (f Func) Summary() string {
	line, _, _ := strings.Cut(strings.TrimSpace(f.Doc), "\n")
	return strings.TrimSpace(line)
}

// ParseFile reads and parses the Go source file at path.
func ParseFile(path string) ([]Func, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSource(path, src)
}

// ParseSource parses Go source and returns its top-level functions and
// methods in file order. src follows go/parser.ParseFile conventions.
// Methods are named "Recv.Method".
func ParseSource(filename string, src any) ([]Func, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	var funcs []Func
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		name := fn.Name.Name
		if recv := receiverName(fn); recv != "" {
			name = recv + "." + name
		}

		params, err := funcParams(file.Name.Name, fn.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		funcs = append(funcs, Func{
			Name:   name,
			Doc:    fn.Doc.Text(),
			Params: params,
		})
	}
	return funcs, nil
}

// Lookup returns the function called name.
func Lookup(funcs []Func, name string) (Func, error) {
	for _, f := range funcs {
		if f.Name == name {
			return f, nil
		}
	}
	return Func{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}

func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.IndexExpr:
		expr = t.X
	case *ast.IndexListExpr:
		expr = t.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func funcParams(pkg string, ft *ast.FuncType) ([]schema.Param, error) {
	if ft.Params == nil {
		return nil, nil
	}

	fields := ft.Params.List
	if len(fields) > 0 && isContext(fields[0].Type) && len(fields[0].Names) <= 1 {
		fields = fields[1:]
	}

	var params []schema.Param
	seen := make(map[string]bool)
	for _, field := range fields {
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("%s: %w", types.ExprString(field.Type), ErrUnnamedParam)
		}

		kind, variadic := exprKind(pkg, field.Type)
		for _, id := range field.Names {
			if id.Name == "_" {
				return nil, fmt.Errorf("blank identifier: %w", ErrUnnamedParam)
			}
			if seen[id.Name] {
				return nil, fmt.Errorf("%s: %w", id.Name, ErrDuplicateParam)
			}
			seen[id.Name] = true

			params = append(params, schema.Param{
				Name:       id.Name,
				Kind:       kind,
				HasDefault: variadic,
			})
		}
	}
	return params, nil
}

func isContext(expr ast.Expr) bool {
	return types.ExprString(expr) == "context.Context"
}

// exprKind classifies a parameter type expression. Variadic parameters may be
// omitted by the caller and so count as having a default.
//
// A bare type name declared in the file's package is qualified as "pkg.Name",
// matching reflect.Type.String, so "type Celsius float64" reads the same here
// and through FromStruct, and a local type called "float" is not KindFloat.
func exprKind(pkg string, expr ast.Expr) (schema.Kind, bool) {
	if ell, ok := expr.(*ast.Ellipsis); ok {
		return schema.Kind(types.ExprString(ell)), true
	}
	if id, ok := expr.(*ast.Ident); ok {
		if k, ok := basicKinds[id.Name]; ok {
			return k, false
		}
		if types.Universe.Lookup(id.Name) == nil {
			return schema.Kind(pkg + "." + id.Name), false
		}
	}
	return schema.Kind(types.ExprString(expr)), false
}

var basicKinds = map[string]schema.Kind{
	"int":     schema.KindInt,
	"int8":    schema.KindInt,
	"int16":   schema.KindInt,
	"int32":   schema.KindInt,
	"int64":   schema.KindInt,
	"uint":    schema.KindInt,
	"uint8":   schema.KindInt,
	"uint16":  schema.KindInt,
	"uint32":  schema.KindInt,
	"uint64":  schema.KindInt,
	"uintptr": schema.KindInt,
	"byte":    schema.KindInt,
	"rune":    schema.KindInt,
	"float32": schema.KindFloat,
	"float64": schema.KindFloat,
	"bool":    schema.KindBool,
	"string":  schema.KindString,
}
