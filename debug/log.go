package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
)

// Logf writes a debug message to stderr. Generic maps and slices are
// rendered as indented json, reflect types by their full name.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case reflect.Type:
			if x == nil {
				args[i] = "<nil type>"
				continue
			}
			args[i] = x.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
