package core

// These errors are user errors, not internal errors.

// NoRender occurs when a transformed component is rendered but the
// original component declared no Render function.
type NoRender struct {
	Component string
}

func (e *NoRender) Error() string {
	return `component "` + e.Component + `" has no render function`
}

// WrongMode occurs when a FieldEditor operation is attempted in a
// mode that doesn't permit it.  For example, a static edit is only
// reachable while in static mode.
type WrongMode struct {
	Op   string
	Mode Mode
}

func (e *WrongMode) Error() string {
	return e.Op + ` not allowed in mode "` + string(e.Mode) + `"`
}

// BadMode occurs when something tries to set a mode that isn't
// "static" or "dynamic".
type BadMode struct {
	Value string
}

func (e *BadMode) Error() string {
	return `unknown mode "` + e.Value + `"`
}
