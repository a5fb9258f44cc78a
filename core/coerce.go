package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field types the host editor knows about.  The primitive types are
// the ones WithExpressions will wrap.
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
	FieldTypeRadio    = "radio"

	// FieldTypeCustom is the host editor's generic
	// custom-rendered field kind.
	FieldTypeCustom = "custom"
)

// IsPrimitiveType reports whether fields of the given type hold a
// single scalar value (and so can be expression-enabled).
func IsPrimitiveType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeSelect, FieldTypeRadio:
		return true
	}
	return false
}

// Coerce forces an evaluation result into the runtime type the given
// field type's static control expects.
//
// An expression can return anything, but the host rendering layer
// cannot safely receive, say, an object where a text input expects a
// string.  Coercion always succeeds; there is no type-mismatch error.
func Coerce(fieldType string, x interface{}) interface{} {
	switch fieldType {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeRadio:
		return Stringify(x)
	case FieldTypeNumber:
		return Numberify(x)
	}
	return x
}

// Stringify renders x as the string a text-like control can hold.
//
// Containers become pretty-printed JSON so that an expression
// returning an object still produces something readable (and
// editable) in a text field.
func Stringify(x interface{}) string {
	switch vv := x.(type) {
	case nil:
		return ""
	case string:
		return vv
	case map[string]interface{}, []interface{}:
		js, err := json.MarshalIndent(&x, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(js)
	}
	return fmt.Sprintf("%v", x)
}

// Numberify renders x as the float64 a number control can hold,
// falling back to 0 for anything unparseable.
func Numberify(x interface{}) float64 {
	switch vv := x.(type) {
	case float64:
		return vv
	case float32:
		return float64(vv)
	case int:
		return float64(vv)
	case int32:
		return float64(vv)
	case int64:
		return float64(vv)
	case uint:
		return float64(vv)
	case uint64:
		return float64(vv)
	case json.Number:
		f, err := vv.Float64()
		if err != nil {
			return 0
		}
		return f
	case bool:
		if vv {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(vv, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
