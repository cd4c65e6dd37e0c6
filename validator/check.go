package validator

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// field locates the value under check, for error reporting.
type field struct {
	section valerrors.Section
	path    []string
}

func (f field) fail(kind valerrors.Kind) *valerrors.ValidationError {
	return &valerrors.ValidationError{
		Kind:    kind,
		Section: f.section,
		Path:    append([]string(nil), f.path...),
	}
}

// checkPresent fails with MissingField when no value was supplied.
func checkPresent(f field, value any, supplied bool) error {
	if !supplied {
		return f.fail(valerrors.KindMissingField)
	}
	return nil
}

// checkType fails with TypeMismatch unless value satisfies kind.
func checkType(f field, value any, kind schema.Kind) error {
	if matchesKind(value, kind) {
		return nil
	}
	err := f.fail(valerrors.KindTypeMismatch)
	err.Expected = string(kind)
	return err
}

// checkEnum fails with InvalidEnum when allowed is non-empty and value is
// not one of its members.
func checkEnum(f field, value any, allowed []any) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if enumEqual(value, a) {
			return nil
		}
	}
	err := f.fail(valerrors.KindInvalidEnum)
	err.Allowed = allowed
	return err
}

// checkRequired fails with MissingField on the first name absent from obj.
// The reported path is the parent path extended by the missing name.
func checkRequired(f field, obj map[string]any, required []string) error {
	for _, name := range required {
		if _, ok := obj[name]; !ok {
			return field{section: f.section, path: appendPath(f.path, name)}.fail(valerrors.KindMissingField)
		}
	}
	return nil
}

// matchesKind reports whether value satisfies the declared kind.
// Strings that parse fully as numbers satisfy number (and integer when
// integral). JSON null satisfies nothing but the empty kind.
func matchesKind(value any, kind schema.Kind) bool {
	switch kind {
	case schema.KindAny:
		return true
	case schema.KindString:
		_, ok := value.(string)
		return ok
	case schema.KindNumber:
		return IsNumber(value)
	case schema.KindInteger:
		return IsInteger(value)
	case schema.KindBoolean:
		_, ok := value.(bool)
		return ok
	case schema.KindArray:
		return isArray(value)
	case schema.KindObject:
		_, ok := value.(map[string]any)
		return ok
	default:
		return false
	}
}

// IsNumber reports whether v is numeric: any Go numeric type, a json.Number,
// or a string that parses fully as a finite or infinite float.
// Empty strings and "NaN" are not numbers.
func IsNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// IsInteger reports whether v is a number with no fractional part.
func IsInteger(v any) bool {
	f, ok := toFloat(v)
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseNumeric(string(n))
	case string:
		return parseNumeric(n)
	default:
		return 0, false
	}
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// isArray reports whether v is an ordered sequence. Byte slices are not.
func isArray(v any) bool {
	switch v.(type) {
	case nil, []byte:
		return false
	case []any:
		return true
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// enumEqual compares a value with an enum member. Numeric values compare
// numerically; everything else must match in kind and value.
func enumEqual(value, member any) bool {
	if isNumeric(value) && isNumeric(member) {
		a, _ := toFloat(value)
		b, _ := toFloat(member)
		return a == b
	}
	switch value.(type) {
	case string, bool, nil:
		return value == member
	}
	return reflect.DeepEqual(value, member)
}

// isNumeric reports whether v has a numeric Go type. Strings never do.
func isNumeric(v any) bool {
	if _, ok := v.(string); ok {
		return false
	}
	return IsNumber(v)
}

func appendPath(prefix []string, name string) []string {
	out := make([]string, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, name)
}
