package fieldop

import (
	"fmt"
	"reflect"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	errorType    = reflect.TypeFor[error]()
)

func buildText(t reflect.Type) func(v reflect.Value) string {
	if t.Kind() == reflect.Pointer && !t.Implements(stringerType) && !t.Implements(errorType) {
		elem := lazy(t.Elem())
		return func(v reflect.Value) string {
			if v.IsNil() {
				return "null"
			}
			return elem.get().Text(v.Elem())
		}
	}
	return func(v reflect.Value) string {
		if isNil(v) {
			return "null"
		}
		if v.Kind() == reflect.Interface && isNil(v.Elem()) {
			return "null"
		}
		return fmt.Sprint(v)
	}
}
