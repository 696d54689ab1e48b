package codegen

import (
	"go/ast"

	"github.com/signadot/derive/member"
)

// StructInfo holds parsed struct information from Go source
type StructInfo struct {
	// Name is the struct type name
	Name string

	// Package is the package name this struct belongs to
	Package string

	// FilePath is the path to the source file containing this struct
	FilePath string

	// Fields contains the exported fields in declaration order
	Fields []*FieldInfo

	// Ops is the set of operations requested by the derive directive
	Ops member.Marker

	// Pointer declares methods on *T with reference semantics
	Pointer bool

	// Tagged is set when the type declares TypeTag() string
	Tagged bool

	// Comments contains struct-level comments (above the type declaration)
	Comments []string

	// ASTNode is the original AST node for this struct (for reference)
	ASTNode *ast.StructType
}

// Has reports whether the directive requested every operation in m.
func (s *StructInfo) Has(m member.Marker) bool {
	return s.Ops&m == m
}

// FieldInfo holds field information extracted from struct definition
type FieldInfo struct {
	// Name is the struct field name
	Name string

	// SerialName is the name used by ExtractFields and InjectFields.
	// Extracted from `derive:"field=name"` tag, or defaults to Name
	SerialName string

	// Exclude holds the operations the field's tag opts out of
	Exclude member.Marker

	// Kind selects how generated code handles the field
	Kind FieldKind

	// ASTType is the AST representation of the field type
	ASTType ast.Expr

	// IsEmbedded indicates if this is an embedded field
	IsEmbedded bool
}

// In reports whether the field takes part in operation m.
func (f *FieldInfo) In(m member.Marker) bool {
	return f.Exclude&m == 0
}

// PackageInfo describes a discovered Go package.
type PackageInfo struct {
	// Path is the import path
	Path string

	// Dir is the absolute directory
	Dir string

	// Name is the package name
	Name string

	// Files are the absolute paths of the non-test Go files
	Files []string
}

// Config configures a generation run.
type Config struct {
	// Dir is the directory to scan
	Dir string

	// Recursive scans subdirectories of Dir
	Recursive bool

	// OutputFile is the base name of the generated file in each package.
	// Defaults to <package>_derive.go
	OutputFile string

	// UseTypes type-checks each package to classify field types
	// precisely. Without it fields are classified from syntax alone.
	UseTypes bool
}

// Result is the outcome of generating one package.
type Result struct {
	Package *PackageInfo

	// OutputFile is the absolute path of the generated file
	OutputFile string

	Structs []*StructInfo

	// Code is the formatted source, empty if no struct in the package
	// carries a directive
	Code []byte
}

const (
	// Header starts every generated file.
	Header = "// Code generated by derive-gen. DO NOT EDIT."

	defaultSuffix = "_derive.go"
)

// OutputName returns the base name of the generated file for a package.
func (c *Config) OutputName(pkg *PackageInfo) string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return pkg.Name + defaultSuffix
}
