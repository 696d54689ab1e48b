package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/signadot/derive"
	"github.com/signadot/derive/member"
)

// Directive is the comment prefix marking a struct for generation.
const Directive = "//derive:"

// ParseFile parses a Go source file and returns its AST.
func ParseFile(filename string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %q: %w", filename, err)
	}
	return file, fset, nil
}

// ExtractTypes extracts the struct types carrying a derive directive.
func ExtractTypes(file *ast.File, filePath string) ([]*StructInfo, error) {
	var structs []*StructInfo

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			ops, ptr, found, err := parseDirectives(doc)
			if err != nil {
				return nil, fmt.Errorf("failed to parse directive for type %q: %w", typeSpec.Name.Name, err)
			}
			if !found {
				continue
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("type %q: derive directive on non-struct type", typeSpec.Name.Name)
			}
			if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
				return nil, fmt.Errorf("type %q: generic types are not supported", typeSpec.Name.Name)
			}

			fields, err := extractFields(structType)
			if err != nil {
				return nil, fmt.Errorf("failed to extract fields from struct %q: %w", typeSpec.Name.Name, err)
			}

			structs = append(structs, &StructInfo{
				Name:     typeSpec.Name.Name,
				Package:  file.Name.Name,
				FilePath: filePath,
				Fields:   fields,
				Ops:      ops,
				Pointer:  ptr,
				Comments: ExtractComments(doc),
				ASTNode:  structType,
			})
		}
	}

	return structs, nil
}

// ExtractComments returns the text of the non-directive lines of a doc
// comment.
func ExtractComments(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var comments []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			comments = append(comments, line)
		}
	}
	return comments
}

// parseDirectives combines every derive directive line of doc.
func parseDirectives(doc *ast.CommentGroup) (ops member.Marker, ptr, found bool, err error) {
	if doc == nil {
		return
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok {
			continue
		}
		found = true
		kvs, err := member.ParseStructTag(rest)
		if err != nil {
			return 0, false, false, err
		}
		for k, v := range kvs {
			if v != "" {
				return 0, false, false, fmt.Errorf("%q takes no value", k)
			}
			if k == "ptr" {
				ptr = true
				continue
			}
			m, err := member.ParseMarker(k)
			if err != nil {
				return 0, false, false, err
			}
			ops |= m
		}
	}
	if found && ops == member.None {
		return 0, false, false, fmt.Errorf("directive names no operation")
	}
	return
}

func extractFields(st *ast.StructType) ([]*FieldInfo, error) {
	var fields []*FieldInfo
	for _, field := range st.Fields.List {
		var ft member.FieldTag
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				return nil, fmt.Errorf("invalid struct tag %s: %w", field.Tag.Value, err)
			}
			ft, err = member.ParseFieldTag(reflect.StructTag(raw).Get(member.TagName))
			if err != nil {
				return nil, err
			}
		}

		names := field.Names
		embedded := len(names) == 0
		if embedded {
			name, err := getEmbeddedFieldName(field.Type)
			if err != nil {
				return nil, err
			}
			names = []*ast.Ident{ast.NewIdent(name)}
		}

		for _, name := range names {
			if name.Name == "_" || !ast.IsExported(name.Name) {
				continue
			}
			serialName := ft.Rename
			if serialName == "" {
				serialName = derive.NormalizeName(name.Name)
			}
			fields = append(fields, &FieldInfo{
				Name:       name.Name,
				SerialName: serialName,
				Exclude:    ft.Exclude,
				Kind:       ClassifyExpr(field.Type),
				ASTType:    field.Type,
				IsEmbedded: embedded,
			})
		}
	}
	return fields, nil
}

// getEmbeddedFieldName returns the implicit field name of an embedded
// field: the unqualified type name.
func getEmbeddedFieldName(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, nil
	case *ast.StarExpr:
		return getEmbeddedFieldName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name, nil
	case *ast.IndexExpr, *ast.IndexListExpr:
		return "", fmt.Errorf("embedded generic type %s is not supported", exprString(expr))
	default:
		return "", fmt.Errorf("unsupported embedded field type %T", expr)
	}
}

func exprString(expr ast.Expr) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

func writeExpr(b *strings.Builder, expr ast.Expr) {
	switch t := expr.(type) {
	case *ast.Ident:
		b.WriteString(t.Name)
	case *ast.SelectorExpr:
		writeExpr(b, t.X)
		b.WriteByte('.')
		b.WriteString(t.Sel.Name)
	case *ast.StarExpr:
		b.WriteByte('*')
		writeExpr(b, t.X)
	case *ast.IndexExpr:
		writeExpr(b, t.X)
		b.WriteByte('[')
		writeExpr(b, t.Index)
		b.WriteByte(']')
	case *ast.IndexListExpr:
		writeExpr(b, t.X)
		b.WriteByte('[')
		for i, x := range t.Indices {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, x)
		}
		b.WriteByte(']')
	default:
		fmt.Fprintf(b, "%T", expr)
	}
}

// methodSet maps a type name to its declared methods; the value records a
// pointer receiver.
type methodSet map[string]map[string]bool

// collectMethods adds the methods declared in file to ms.
func collectMethods(file *ast.File, ms methodSet) {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
			continue
		}
		recv := fn.Recv.List[0].Type
		ptr := false
		if star, ok := recv.(*ast.StarExpr); ok {
			recv, ptr = star.X, true
		}
		id, ok := recv.(*ast.Ident)
		if !ok {
			continue
		}
		if ms[id.Name] == nil {
			ms[id.Name] = make(map[string]bool)
		}
		ms[id.Name][fn.Name.Name] = ptr
	}
}

// generatedMethods lists the methods emitted per operation.
var generatedMethods = []struct {
	op    member.Marker
	names []string
}{
	{member.Hash, []string{"Hash"}},
	{member.Eq, []string{"Equal", "EqualAny"}},
	{member.Ord, []string{"Compare"}},
	{member.Text, []string{"String"}},
	{member.Serial, []string{"ExtractFields", "InjectFields"}},
}

// resolveMethods sets Tagged on each struct and rejects structs already
// declaring a method that would be generated.
func resolveMethods(structs []*StructInfo, ms methodSet) error {
	for _, s := range structs {
		declared := ms[s.Name]
		if ptr, ok := declared["TypeTag"]; ok && (!ptr || s.Pointer) {
			s.Tagged = true
		}
		for _, gm := range generatedMethods {
			if !s.Has(gm.op) {
				continue
			}
			for _, name := range gm.names {
				if _, ok := declared[name]; ok {
					return fmt.Errorf("type %s already declares %s", s.Name, name)
				}
			}
		}
	}
	return nil
}
