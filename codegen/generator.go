package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/derive/member"
)

const (
	fieldopPath = "github.com/signadot/derive/fieldop"
	derivePath  = "github.com/signadot/derive"
)

// GenerateCode renders the derived methods of structs, all declared in
// package pkgName, as a formatted Go source file.
func GenerateCode(pkgName string, structs []*StructInfo) ([]byte, error) {
	g := &generator{imports: make(map[string]bool)}
	for _, s := range structs {
		g.writeStruct(s)
	}

	var out bytes.Buffer
	out.WriteString(Header + "\n\n")
	fmt.Fprintf(&out, "package %s\n", pkgName)
	g.writeImports(&out)
	out.Write(g.body.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}

type generator struct {
	body    bytes.Buffer
	imports map[string]bool
}

func (g *generator) printf(f string, args ...any) {
	fmt.Fprintf(&g.body, f, args...)
}

func (g *generator) use(path string) {
	g.imports[path] = true
}

func (g *generator) writeImports(out *bytes.Buffer) {
	if len(g.imports) == 0 {
		return
	}
	var std, ext []string
	for path := range g.imports {
		if strings.Contains(path, ".") {
			ext = append(ext, path)
		} else {
			std = append(std, path)
		}
	}
	slices.Sort(std)
	slices.Sort(ext)
	out.WriteString("\nimport (\n")
	for _, path := range std {
		fmt.Fprintf(out, "\t%q\n", path)
	}
	if len(std) > 0 && len(ext) > 0 {
		out.WriteString("\n")
	}
	for _, path := range ext {
		fmt.Fprintf(out, "\t%q\n", path)
	}
	out.WriteString(")\n")
}

func (g *generator) writeStruct(s *StructInfo) {
	if s.Has(member.Hash) {
		g.writeHash(s)
	}
	if s.Has(member.Eq) {
		g.writeEqual(s)
		g.writeEqualAny(s)
	}
	if s.Has(member.Ord) {
		g.writeCompare(s)
	}
	if s.Has(member.Text) {
		g.writeString(s)
	}
	if s.Has(member.Serial) {
		g.writeExtract(s)
		g.writeInject(s)
	}
}

// recv returns the receiver type of the value-semantics methods.
func recv(s *StructInfo) string {
	if s.Pointer {
		return "*" + s.Name
	}
	return s.Name
}

func fieldsIn(s *StructInfo, m member.Marker) []*FieldInfo {
	var res []*FieldInfo
	for _, f := range s.Fields {
		if f.In(m) {
			res = append(res, f)
		}
	}
	return res
}

func (g *generator) writeHash(s *StructInfo) {
	g.use(fieldopPath)
	g.printf("\n// Hash returns the derived hash of s.\n")
	g.printf("func (s %s) Hash() int32 {\n", recv(s))
	if s.Pointer {
		g.printf("if s == nil {\nreturn fieldop.Seed\n}\n")
	}
	fields := fieldsIn(s, member.Hash)
	if len(fields) == 0 {
		g.printf("return fieldop.Seed\n}\n")
		return
	}
	g.printf("h := fieldop.Seed\n")
	for _, f := range fields {
		g.printf("h ^= fieldop.Prime + %s\n", hashExpr(f.Kind, "s."+f.Name))
	}
	g.printf("return h\n}\n")
}

func hashExpr(k FieldKind, x string) string {
	switch k {
	case KindBool:
		return "fieldop.HashBool(" + x + ")"
	case KindInt:
		return "fieldop.HashInt64(int64(" + x + "))"
	case KindSmallInt:
		return "fieldop.HashInt32(int32(" + x + "))"
	case KindUint:
		return "fieldop.HashUint64(uint64(" + x + "))"
	case KindFloat32:
		return "fieldop.HashFloat32(" + x + ")"
	case KindFloat64:
		return "fieldop.HashFloat64(" + x + ")"
	case KindString:
		return "fieldop.HashString(" + x + ")"
	default:
		return "fieldop.Hash(" + x + ")"
	}
}

func (g *generator) writeEqual(s *StructInfo) {
	g.printf("\n// Equal reports whether s and o are equal field by field.\n")
	g.printf("func (s %s) Equal(o %s) bool {\n", recv(s), recv(s))
	if s.Pointer {
		g.printf("if s == o {\nreturn true\n}\n")
		g.printf("if s == nil || o == nil {\nreturn false\n}\n")
	}
	if s.Tagged {
		g.printf("if s.TypeTag() != o.TypeTag() {\nreturn false\n}\n")
	}
	fields := fieldsIn(s, member.Eq)
	if len(fields) == 0 {
		g.printf("return true\n}\n")
		return
	}
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = g.eqExpr(f.Kind, "s."+f.Name, "o."+f.Name)
	}
	g.printf("return %s\n}\n", strings.Join(terms, " &&\n"))
}

func (g *generator) eqExpr(k FieldKind, x, y string) string {
	if k == KindOther {
		g.use(fieldopPath)
		return "fieldop.Equal(" + x + ", " + y + ")"
	}
	return x + " == " + y
}

func (g *generator) writeEqualAny(s *StructInfo) {
	g.printf("\n// EqualAny reports whether other is a %s equal to s.\n", recv(s))
	g.printf("func (s %s) EqualAny(other any) bool {\n", recv(s))
	if s.Pointer {
		g.printf("if other == nil {\nreturn s == nil\n}\n")
	}
	g.printf("o, ok := other.(%s)\n", recv(s))
	g.printf("if !ok {\nreturn false\n}\n")
	g.printf("return s.Equal(o)\n}\n")
}

func (g *generator) writeCompare(s *StructInfo) {
	g.printf("\n// Compare orders s and o by their fields in declaration order.\n")
	g.printf("func (s %s) Compare(o %s) int {\n", recv(s), recv(s))
	if s.Pointer {
		g.printf("if s == o {\nreturn 0\n}\n")
		g.printf("if s == nil {\nreturn -1\n}\n")
		g.printf("if o == nil {\nreturn 1\n}\n")
	}
	if s.Tagged {
		g.printf("if s.TypeTag() != o.TypeTag() {\nreturn -1\n}\n")
	}
	for _, f := range fieldsIn(s, member.Ord) {
		g.printf("if c := %s; c != 0 {\nreturn c\n}\n", g.cmpExpr(f.Kind, "s."+f.Name, "o."+f.Name))
	}
	g.printf("return 0\n}\n")
}

func (g *generator) cmpExpr(k FieldKind, x, y string) string {
	switch k {
	case KindInt, KindSmallInt, KindUint, KindString:
		g.use("cmp")
		return "cmp.Compare(" + x + ", " + y + ")"
	}
	g.use(fieldopPath)
	switch k {
	case KindBool:
		return "fieldop.CompareBool(" + x + ", " + y + ")"
	case KindFloat32:
		return "fieldop.CompareFloat(float64(" + x + "), float64(" + y + "))"
	case KindFloat64:
		return "fieldop.CompareFloat(" + x + ", " + y + ")"
	default:
		return "fieldop.Compare(" + x + ", " + y + ")"
	}
}

func (g *generator) writeString(s *StructInfo) {
	g.printf("\nfunc (s %s) String() string {\n", recv(s))
	if s.Pointer {
		g.printf("if s == nil {\nreturn \"(null)\"\n}\n")
	}
	fields := fieldsIn(s, member.Text)
	if len(fields) == 0 {
		g.printf("return %q\n}\n", s.Name)
		return
	}
	g.use("strings")
	g.printf("var b strings.Builder\n")
	g.printf("b.WriteString(%q)\n", s.Name+"(")
	for i, f := range fields {
		if i > 0 {
			g.printf("b.WriteString(\", \")\n")
		}
		g.printf("b.WriteString(%s)\n", g.textExpr(f.Kind, "s."+f.Name))
	}
	g.printf("b.WriteByte(')')\n")
	g.printf("return b.String()\n}\n")
}

func (g *generator) textExpr(k FieldKind, x string) string {
	switch k {
	case KindString:
		return x
	case KindBool:
		g.use("strconv")
		return "strconv.FormatBool(" + x + ")"
	case KindInt, KindSmallInt:
		g.use("strconv")
		return "strconv.FormatInt(int64(" + x + "), 10)"
	case KindUint:
		g.use("strconv")
		return "strconv.FormatUint(uint64(" + x + "), 10)"
	case KindFloat32, KindFloat64:
		g.use("fmt")
		return "fmt.Sprint(" + x + ")"
	default:
		g.use(fieldopPath)
		return "fieldop.Text(" + x + ")"
	}
}

func (g *generator) writeExtract(s *StructInfo) {
	g.use(derivePath)
	g.printf("\n// ExtractFields writes the serialized fields of s to sink.\n")
	g.printf("func (s %s) ExtractFields(sink derive.Sink) error {\n", recv(s))
	g.printf("if sink == nil {\nreturn &derive.NullArgumentError{Param: \"sink\"}\n}\n")
	if s.Pointer {
		g.printf("if s == nil {\nreturn &derive.NullArgumentError{Param: \"self\"}\n}\n")
	}
	for _, f := range fieldsIn(s, member.Serial) {
		g.printf("if err := derive.WriteField(sink, %s, s.%s); err != nil {\nreturn err\n}\n", strconv.Quote(f.SerialName), f.Name)
	}
	g.printf("return nil\n}\n")
}

func (g *generator) writeInject(s *StructInfo) {
	g.use(derivePath)
	g.printf("\n// InjectFields reads the serialized fields of s from src.\n")
	g.printf("func (s *%s) InjectFields(src derive.Source) error {\n", s.Name)
	g.printf("if src == nil {\nreturn &derive.NullArgumentError{Param: \"source\"}\n}\n")
	g.printf("if s == nil {\nreturn &derive.NullArgumentError{Param: \"dst\"}\n}\n")
	for _, f := range fieldsIn(s, member.Serial) {
		g.printf("if err := derive.ReadInto(src, %s, &s.%s); err != nil {\nreturn err\n}\n", strconv.Quote(f.SerialName), f.Name)
	}
	g.printf("return nil\n}\n")
}
