package core

// Mode says which of a WrappedValue's fields is authoritative.
type Mode string

const (
	// Static means the value is the literal the user typed.
	Static Mode = "static"

	// Dynamic means the value is (re)computed from the expression.
	Dynamic Mode = "dynamic"
)

// ValidMode reports whether the string is a known Mode.
func ValidMode(s string) bool {
	switch Mode(s) {
	case Static, Dynamic:
		return true
	}
	return false
}

// WrappedValue is the unit of expression bookkeeping for one field
// value.
//
// A WrappedValue replaces a bare literal in the host editor's
// persisted component props.  Value is always what downstream
// rendering code should see: the literal in static mode, or the most
// recently successfully evaluated (and coerced) result in dynamic
// mode.  StaticValue and Expression are both retained across mode
// toggles so that switching back and forth never loses work.
type WrappedValue struct {
	Mode Mode `json:"mode" yaml:"mode"`

	Value interface{} `json:"value" yaml:"value"`

	// Expression is the source text of the expression (if any).
	// An empty Expression in dynamic mode means "no expression
	// entered yet".
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`

	// StaticValue is the last literal the user typed in static
	// mode.  Toggling dynamic→static restores Value from here.
	StaticValue interface{} `json:"staticValue,omitempty" yaml:"staticValue,omitempty"`

	// Error is the message from the most recent failed evaluation
	// in dynamic mode.  Cleared on mode change, on expression
	// edit, and on a later successful evaluation.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Copy makes a shallow copy of the WrappedValue.
func (w *WrappedValue) Copy() *WrappedValue {
	if w == nil {
		return nil
	}
	acc := *w
	return &acc
}

// Map gives the canonical map representation, which is what the host
// editor will persist as the field's value.
func (w *WrappedValue) Map() map[string]interface{} {
	m := map[string]interface{}{
		"mode":  string(w.Mode),
		"value": w.Value,
	}
	if w.Expression != "" {
		m["expression"] = w.Expression
	}
	if w.StaticValue != nil {
		m["staticValue"] = w.StaticValue
	}
	if w.Error != "" {
		m["error"] = w.Error
	}
	return m
}

// IsWrapped reports whether x carries the WrappedValue shape: either
// a *WrappedValue or a map with a valid "mode" and a "value" key.
//
// The map form matters because persisted documents come back from
// JSON as plain maps.
func IsWrapped(x interface{}) bool {
	switch vv := x.(type) {
	case *WrappedValue:
		return vv != nil
	case WrappedValue:
		return true
	case map[string]interface{}:
		mode, have := vv["mode"].(string)
		if !have || !ValidMode(mode) {
			return false
		}
		_, have = vv["value"]
		return have
	}
	return false
}

// AsWrapped converts a recognized value to a *WrappedValue.
//
// The second return value reports whether x had the WrappedValue
// shape at all.
func AsWrapped(x interface{}) (*WrappedValue, bool) {
	switch vv := x.(type) {
	case *WrappedValue:
		if vv == nil {
			return nil, false
		}
		return vv, true
	case WrappedValue:
		return &vv, true
	case map[string]interface{}:
		if !IsWrapped(vv) {
			return nil, false
		}
		w := &WrappedValue{
			Mode:  Mode(vv["mode"].(string)),
			Value: vv["value"],
		}
		if s, is := vv["expression"].(string); is {
			w.Expression = s
		}
		if v, have := vv["staticValue"]; have {
			w.StaticValue = v
		}
		if s, is := vv["error"].(string); is {
			w.Error = s
		}
		return w, true
	}
	return nil, false
}

// Normalize turns any incoming field value into a WrappedValue.
//
// A value that already has the WrappedValue shape is converted as-is.
// Anything else is treated as an implicit static literal, which is
// the migration path for documents saved before expressions existed.
func Normalize(x interface{}) *WrappedValue {
	if w, is := AsWrapped(x); is {
		return w.Copy()
	}
	return &WrappedValue{
		Mode:        Static,
		Value:       x,
		StaticValue: x,
	}
}
