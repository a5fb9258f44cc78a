package core

import (
	"context"
	"sync"
	"time"
)

// Editors is a registry of FieldEditors keyed by field instance id.
//
// A field editor has short-lived state of its own (a debounce timer,
// a version counter), so the same field instance must get the same
// editor on every render.  The registry is what makes that happen.
type Editors struct {
	sync.Mutex

	opts    *Options
	editors map[string]*FieldEditor
}

func NewEditors(opts *Options) *Editors {
	return &Editors{
		opts:    opts.norm(),
		editors: make(map[string]*FieldEditor, 8),
	}
}

// Editor finds or creates the FieldEditor for the given field
// instance.
func (es *Editors) Editor(id string, f *Field) *FieldEditor {
	es.Lock()
	ed, have := es.editors[id]
	if !have {
		ed = NewFieldEditor(id, f, es.opts)
		es.editors[id] = ed
	}
	es.Unlock()
	return ed
}

// Render is the target of every wrapped field's render callback.  It
// re-syncs the editor from the authoritative document value and
// returns the editor as the control handle.
func (es *Editors) Render(p *FieldEditorProps) (interface{}, error) {
	ed := es.Editor(p.FieldID, p.Field)
	ed.Sync(p.Value, p.OnChange)
	return ed, nil
}

// Close closes every editor in the registry.
func (es *Editors) Close() {
	es.Lock()
	for _, ed := range es.editors {
		ed.Close()
	}
	es.Unlock()
}

// FieldEditor is the two-mode (static/dynamic) control for a single
// field value.
//
// The editor treats the host's persisted document as the single
// source of truth: each render re-syncs via Sync(), and the editor
// itself only holds short-lived derived state (the debounce timer and
// the evaluation version counter).  Every mutation is written back
// through the OnChange callback as a WrappedValue.
//
// Expression edits are debounced, and every edit bumps a version
// counter.  A completing evaluation whose captured version is stale
// is discarded, so an in-flight evaluation is never aborted, only
// ignored: last issued, if it completes, wins.
type FieldEditor struct {
	sync.Mutex

	id        string
	field     *Field
	evaluator Evaluator
	scope     *ScopeProvider
	debounce  time.Duration

	onChange func(interface{})
	current  *WrappedValue

	version uint64
	timer   *time.Timer
	pending func()

	evals sync.WaitGroup
}

// NewFieldEditor makes an editor for one field instance.  Most users
// won't call this directly: WithExpressions wires editors up via an
// Editors registry.
func NewFieldEditor(id string, f *Field, opts *Options) *FieldEditor {
	opts = opts.norm()
	return &FieldEditor{
		id:        id,
		field:     f,
		evaluator: opts.Evaluator,
		scope:     opts.Scope,
		debounce:  opts.Debounce,
		current: &WrappedValue{
			Mode: Static,
		},
	}
}

// Id returns the field instance id.
func (e *FieldEditor) Id() string {
	return e.id
}

// Field returns the original field definition.
func (e *FieldEditor) Field() *Field {
	return e.field
}

// Sync re-reads the authoritative value from the host's document.
// A bare literal (from a pre-expression document) normalizes to an
// implicit static WrappedValue.
func (e *FieldEditor) Sync(value interface{}, onChange func(interface{})) {
	e.Lock()
	e.current = Normalize(value)
	e.onChange = onChange
	e.Unlock()
}

// Value returns a copy of the current WrappedValue.
func (e *FieldEditor) Value() *WrappedValue {
	e.Lock()
	w := e.current.Copy()
	e.Unlock()
	return w
}

// Mode returns the current mode.
func (e *FieldEditor) Mode() Mode {
	e.Lock()
	m := e.current.Mode
	e.Unlock()
	return m
}

// SetMode switches between static and dynamic.
//
// The error is cleared, any scheduled or in-flight evaluation becomes
// stale, and on a switch to static the value is restored from the
// retained StaticValue (if any).  Expression and StaticValue are both
// kept so no work is lost across toggles.
func (e *FieldEditor) SetMode(m Mode) error {
	if !ValidMode(string(m)) {
		return &BadMode{string(m)}
	}

	e.Lock()
	if e.current.Mode == m {
		e.Unlock()
		return nil
	}
	e.current.Mode = m
	e.current.Error = ""
	e.version++
	e.stopTimer()
	if m == Static && e.current.StaticValue != nil {
		e.current.Value = e.current.StaticValue
	}
	w, f := e.current.Copy(), e.onChange
	e.Unlock()

	if f != nil {
		f(w)
	}
	return nil
}

// Toggle flips the mode and returns the new one.
func (e *FieldEditor) Toggle() Mode {
	m := Dynamic
	if e.Mode() == Dynamic {
		m = Static
	}
	e.SetMode(m)
	return m
}

// SetStatic records a literal edit.  Only reachable in static mode.
func (e *FieldEditor) SetStatic(v interface{}) error {
	e.Lock()
	if e.current.Mode != Static {
		m := e.current.Mode
		e.Unlock()
		return &WrongMode{"static edit", m}
	}
	e.current.Value = v
	e.current.StaticValue = v
	e.current.Error = ""
	w, f := e.current.Copy(), e.onChange
	e.Unlock()

	if f != nil {
		f(w)
	}
	return nil
}

// SetExpression records an expression edit and schedules a debounced
// evaluation.  Only reachable in dynamic mode.
//
// The value does not change here; it changes only when the scheduled
// evaluation completes (successfully, and non-stale).
func (e *FieldEditor) SetExpression(ctx context.Context, src string) error {
	e.Lock()
	if e.current.Mode != Dynamic {
		m := e.current.Mode
		e.Unlock()
		return &WrongMode{"expression edit", m}
	}

	e.current.Expression = src
	e.current.Error = ""
	e.version++
	v := e.version
	e.stopTimer()

	if src != "" {
		if e.debounce < 0 {
			e.startEval(ctx, v, src)
		} else {
			e.pending = func() {
				e.startEval(ctx, v, src)
			}
			e.timer = time.AfterFunc(e.debounce, func() {
				e.Lock()
				if e.timer == nil || e.version != v {
					// Superseded while we waited.
					e.Unlock()
					return
				}
				e.timer = nil
				e.pending = nil
				e.startEval(ctx, v, src)
				e.Unlock()
			})
		}
	}

	w, f := e.current.Copy(), e.onChange
	e.Unlock()

	if f != nil {
		f(w)
	}
	return nil
}

// Flush fires any pending debounced evaluation immediately.  Mostly
// for tests and for "evaluate now" UI affordances.
func (e *FieldEditor) Flush() {
	e.Lock()
	p := e.pending
	e.stopTimer()
	e.Unlock()

	if p != nil {
		p()
	}
}

// Wait blocks until all in-flight evaluations have completed (or been
// discarded).
func (e *FieldEditor) Wait() {
	e.evals.Wait()
}

// Close cancels any scheduled evaluation.  In-flight evaluations are
// not aborted; their completions just go stale.
func (e *FieldEditor) Close() {
	e.Lock()
	e.version++
	e.stopTimer()
	e.Unlock()
}

// stopTimer cancels the debounce timer and the pending evaluation.
// Callers must hold the lock.
func (e *FieldEditor) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.pending = nil
}

// startEval launches one evaluation tagged with the given version.
// Safe to call with or without the lock held: it only reads fields
// that never change after construction.
func (e *FieldEditor) startEval(ctx context.Context, version uint64, src string) {
	scope := e.scope.Scope()
	e.evals.Add(1)
	go func() {
		defer e.evals.Done()
		o := Evaluate(ctx, e.evaluator, src, scope)
		e.complete(version, o)
	}()
}

// complete applies one evaluation result, unless the result is stale
// or the editor has left dynamic mode in the meantime.
func (e *FieldEditor) complete(version uint64, o Outcome) {
	e.Lock()
	if version != e.version || e.current.Mode != Dynamic {
		// Stale: a newer edit (or a mode switch) won.
		e.Unlock()
		return
	}

	fieldType := ""
	if e.field != nil {
		fieldType = e.field.Type
	}

	if o.OK {
		e.current.Value = Coerce(fieldType, o.Value)
		e.current.Error = ""
	} else {
		// Keep the last good value; only surface the message.
		e.current.Error = o.Error
	}

	w, f := e.current.Copy(), e.onChange
	e.Unlock()

	if f != nil {
		f(w)
	}
}
