// Package modelgen generates pgq model metadata from plain Go struct
// definitions. It parses an input file, finds the exported struct types, and
// emits a companion file with table constants, column handle registries and
// the Model interface methods, so applications never write column metadata
// by hand.
package modelgen

import (
	"bytes"
	"embed"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"
	"text/template"
	"unicode"
)

//go:embed templates/models.go.tpl
var templatesFS embed.FS

var tpl *template.Template

func init() {
	var err error
	tpl, err = template.ParseFS(templatesFS, "templates/models.go.tpl")
	if err != nil {
		panic(fmt.Sprintf("failed to parse model template: %v", err))
	}
}

// Model describes one struct type found in the input file.
type Model struct {
	// Name is the Go struct name, e.g. "Book".
	Name string

	// Table is the snake_case table name, e.g. "book".
	Table string

	Fields []Field
}

// Field describes one mapped struct field.
type Field struct {
	// Name is the Go field name, e.g. "AuthorID".
	Name string

	// Column is the snake_case column name, e.g. "author_id".
	Column string

	// HandleType is the column handle type for the registry,
	// e.g. "pgq.TextColumn" or "pgq.TypedColumn[int64]".
	HandleType string

	// Constructor is the matching constructor expression,
	// e.g. "pgq.NewTextColumn" or "pgq.NewTypedColumn[int64]".
	Constructor string

	// Array marks a slice-typed field. database/sql cannot scan a
	// PostgreSQL array into a bare *[]T, so Fields() wraps these with
	// pq.Array.
	Array bool
}

// File is the template input: one generated file covering every model of
// one package.
type File struct {
	Package string
	Models  []Model

	// NeedsPq is set when any model has an array field, so the template
	// imports lib/pq for the pq.Array scan wrapper.
	NeedsPq bool
}

// Parse extracts the models from Go source. Every exported struct type is
// mapped; a `pgq:"name"` field tag overrides the derived column name and
// `pgq:"-"` skips the field. Unexported and embedded fields are skipped.
func Parse(filename string, src []byte) ([]Model, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	var models []Model
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			m, err := buildModel(fset, ts.Name.Name, st)
			if err != nil {
				return nil, err
			}
			if len(m.Fields) > 0 {
				models = append(models, m)
			}
		}
	}

	if len(models) == 0 {
		return nil, fmt.Errorf("no mappable struct types found in %s", filename)
	}
	return models, nil
}

func buildModel(fset *token.FileSet, name string, st *ast.StructType) (Model, error) {
	m := Model{Name: name, Table: snakeCase(name)}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded
		}
		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}

			column := snakeCase(ident.Name)
			if tag := fieldTag(field); tag != "" {
				if tag == "-" {
					continue
				}
				column = tag
			}

			handle, ctor, array, err := columnHandle(fset, field.Type)
			if err != nil {
				return Model{}, fmt.Errorf("%s.%s: %w", name, ident.Name, err)
			}

			m.Fields = append(m.Fields, Field{
				Name:        ident.Name,
				Column:      column,
				HandleType:  handle,
				Constructor: ctor,
				Array:       array,
			})
		}
	}
	return m, nil
}

// columnHandle picks the column handle for a field type: strings get a
// TextColumn, pointers a NullColumn of the element, slices an ArrayColumn of
// the element, everything else a plain TypedColumn.
func columnHandle(fset *token.FileSet, expr ast.Expr) (handleType, constructor string, array bool, err error) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		elem, err := typeString(fset, t.X)
		if err != nil {
			return "", "", false, err
		}
		return "pgq.NullColumn[" + elem + "]", "pgq.NewNullColumn[" + elem + "]", false, nil
	case *ast.ArrayType:
		if t.Len != nil {
			break // fixed-size arrays are not mappable
		}
		elem, err := typeString(fset, t.Elt)
		if err != nil {
			return "", "", false, err
		}
		if elem == "byte" {
			// []byte decodes as bytea, a scalar.
			return "pgq.TypedColumn[[]byte]", "pgq.NewTypedColumn[[]byte]", false, nil
		}
		return "pgq.ArrayColumn[" + elem + "]", "pgq.NewArrayColumn[" + elem + "]", true, nil
	case *ast.Ident:
		if t.Name == "string" {
			return "pgq.TextColumn", "pgq.NewTextColumn", false, nil
		}
	}

	s, err := typeString(fset, expr)
	if err != nil {
		return "", "", false, err
	}
	return "pgq.TypedColumn[" + s + "]", "pgq.NewTypedColumn[" + s + "]", false, nil
}

func typeString(fset *token.FileSet, expr ast.Expr) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return "", fmt.Errorf("rendering type: %w", err)
	}
	return buf.String(), nil
}

// fieldTag returns the pgq struct tag value, or "" when absent.
func fieldTag(field *ast.Field) string {
	if field.Tag == nil {
		return ""
	}
	raw := strings.Trim(field.Tag.Value, "`")
	for _, part := range strings.Fields(raw) {
		if v, ok := strings.CutPrefix(part, `pgq:"`); ok {
			return strings.TrimSuffix(v, `"`)
		}
	}
	return ""
}

// Generate renders the companion file for the given models and formats it
// with gofmt.
func Generate(pkg string, models []Model) ([]byte, error) {
	file := File{Package: pkg, Models: models}
	for _, m := range models {
		for _, f := range m.Fields {
			if f.Array {
				file.NeedsPq = true
			}
		}
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, file); err != nil {
		return nil, fmt.Errorf("executing model template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return out, nil
}

// snakeCase converts a Go identifier to snake_case, keeping initialisms
// together: "AuthorID" becomes "author_id", "HTTPStatus" "http_status".
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 &&
				(!unicode.IsUpper(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
