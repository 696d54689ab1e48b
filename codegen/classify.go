package codegen

import (
	"fmt"
	"go/ast"
	"go/types"
)

// FieldKind selects the code emitted for a field. Fields of predeclared
// basic types get direct expressions; everything else goes through the
// generic helpers of package fieldop.
type FieldKind int

const (
	KindOther FieldKind = iota
	KindBool
	KindInt      // int, int64
	KindSmallInt // int8, int16, int32
	KindUint
	KindFloat32
	KindFloat64
	KindString
)

func (k FieldKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindSmallInt:
		return "smallint"
	case KindUint:
		return "uint"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "other"
	}
}

var predeclared = map[string]FieldKind{
	"bool":    KindBool,
	"int":     KindInt,
	"int64":   KindInt,
	"int8":    KindSmallInt,
	"int16":   KindSmallInt,
	"int32":   KindSmallInt,
	"rune":    KindSmallInt,
	"uint":    KindUint,
	"uint8":   KindUint,
	"uint16":  KindUint,
	"uint32":  KindUint,
	"uint64":  KindUint,
	"uintptr": KindUint,
	"byte":    KindUint,
	"float32": KindFloat32,
	"float64": KindFloat64,
	"string":  KindString,
}

// ClassifyExpr classifies a field type from syntax alone. An identifier is
// taken to be the predeclared type of that name.
func ClassifyExpr(expr ast.Expr) FieldKind {
	if id, ok := expr.(*ast.Ident); ok {
		return predeclared[id.Name]
	}
	return KindOther
}

// ClassifyType classifies a type-checked field type. Aliases are resolved;
// defined types are KindOther even when their underlying type is basic,
// since they may carry methods.
func ClassifyType(t types.Type) FieldKind {
	b, ok := types.Unalias(t).(*types.Basic)
	if !ok {
		return KindOther
	}
	switch b.Kind() {
	case types.Bool:
		return KindBool
	case types.Int, types.Int64:
		return KindInt
	case types.Int8, types.Int16, types.Int32:
		return KindSmallInt
	case types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64, types.Uintptr:
		return KindUint
	case types.Float32:
		return KindFloat32
	case types.Float64:
		return KindFloat64
	case types.String:
		return KindString
	default:
		return KindOther
	}
}

// ClassifyFields refines the kinds of every field of structs using the
// type-checked package pkg.
func ClassifyFields(structs []*StructInfo, pkg *types.Package) error {
	for _, s := range structs {
		st, err := FindStructType(pkg, s.Name)
		if err != nil {
			return err
		}
		byName := make(map[string]types.Type, st.NumFields())
		for i := 0; i < st.NumFields(); i++ {
			byName[st.Field(i).Name()] = st.Field(i).Type()
		}
		for _, f := range s.Fields {
			t, ok := byName[f.Name]
			if !ok {
				return fmt.Errorf("type %s has no field %s", s.Name, f.Name)
			}
			f.Kind = ClassifyType(t)
		}
	}
	return nil
}

// FindStructType finds the struct type declared as name in pkg.
func FindStructType(pkg *types.Package, name string) (*types.Struct, error) {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %q not found in package %q", name, pkg.Path())
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%q is not a type", name)
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %q is not a struct", name)
	}
	return st, nil
}
