package stdlib

import (
	"fmt"

	"github.com/mirrow-lang/mirrow/internal/object"
)

// createError mirrors the host project's std/common.go createError
// convention: builtins report failure as an ordinary *object.Error
// value (a Go error would have to be translated back into Mirrow's
// value space at every call site anyway), never a Go error.
func createError(format string, a ...interface{}) (object.Value, error) {
	return &object.Error{Message: fmt.Sprintf(format, a...)}, nil
}

func wrongArgCount(name string, want int, got int) (object.Value, error) {
	return createError("%s expects %d argument(s), got %d", name, want, got)
}

func argTypeError(name string, index int, want, got object.ValueType) (object.Value, error) {
	return createError("%s argument %d must be %s, got %s", name, index, want, got)
}

// extractGo converts a Mirrow value to a plain Go value for use with
// fmt.Fprintf-style formatting (printf) — a simplified counterpart of
// the host project's std.ExtractValue.
func extractGo(v object.Value) interface{} {
	switch val := v.(type) {
	case *object.Number:
		return val.Value
	case *object.String:
		return val.Value
	case *object.Bool:
		return val.Value
	case *object.Nil:
		return nil
	default:
		return val.ToString()
	}
}
