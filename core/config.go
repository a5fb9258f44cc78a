package core

import (
	"time"
)

// DefaultDebounce is the delay between an expression edit and the
// evaluation it schedules.  Only the last edit within the window
// actually evaluates.
var DefaultDebounce = 300 * time.Millisecond

// RenderFunc renders a component given its (resolved, plain-valued)
// props.  What it returns is up to the host editor.
type RenderFunc func(props map[string]interface{}) (interface{}, error)

// FieldRenderFunc renders the editor control for one field.  This is
// the host editor's custom-field extension point.
type FieldRenderFunc func(p *FieldEditorProps) (interface{}, error)

// Option is one choice for a select or radio field.
type Option struct {
	Label string `json:"label,omitempty" yaml:",omitempty"`
	Value string `json:"value" yaml:"value"`
}

// Field declares one property of a component.
type Field struct {
	// Type is one of the FieldType constants, or anything else
	// the host editor understands (array, object, slot, ...).
	Type string `json:"type" yaml:"type"`

	Label string `json:"label,omitempty" yaml:",omitempty"`

	// Doc describes the field in English and Markdown.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	// Options are for select and radio fields.
	Options []Option `json:"options,omitempty" yaml:",omitempty"`

	// Render is only consulted for FieldTypeCustom fields.
	Render FieldRenderFunc `json:"-" yaml:"-"`

	// Meta carries any other field properties straight through.
	Meta map[string]interface{} `json:"meta,omitempty" yaml:",omitempty"`
}

// Copy makes a mostly-shallow copy of the Field (Options get a fresh
// slice).
func (f *Field) Copy() *Field {
	if f == nil {
		return nil
	}
	acc := *f
	if f.Options != nil {
		acc.Options = make([]Option, len(f.Options))
		copy(acc.Options, f.Options)
	}
	return &acc
}

// Component declares one component: its editable fields, its default
// props, and how to render it.
type Component struct {
	// Doc describes the component in English and Markdown.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	Fields map[string]*Field `json:"fields,omitempty" yaml:",omitempty"`

	DefaultProps map[string]interface{} `json:"defaultProps,omitempty" yaml:"defaultProps,omitempty"`

	Render RenderFunc `json:"-" yaml:"-"`

	// Meta carries any other component properties straight
	// through.
	Meta map[string]interface{} `json:"meta,omitempty" yaml:",omitempty"`
}

// Copy makes a copy of the Component with a fresh Fields map.
func (c *Component) Copy() *Component {
	if c == nil {
		return nil
	}
	acc := *c
	if c.Fields != nil {
		acc.Fields = make(map[string]*Field, len(c.Fields))
		for name, f := range c.Fields {
			acc.Fields[name] = f.Copy()
		}
	}
	return &acc
}

// Config is the declarative map of component definitions the host
// editor consumes.
type Config struct {
	Components map[string]*Component `json:"components" yaml:"components"`
}

// FieldEditorProps is what the host editor hands a custom field's
// render callback: which field, its current (possibly wrapped) value,
// and how to write a new value back into the document.
type FieldEditorProps struct {
	// FieldID identifies the field instance (typically component
	// instance id plus field name).
	FieldID string

	// Field is the original field definition, so the editor can
	// render the right static-mode control and can look up
	// type-specific coercion rules.
	Field *Field

	// Value is the field's current value as persisted: a
	// WrappedValue (usually in map form) or, for pre-expression
	// documents, a bare literal.
	Value interface{}

	// OnChange writes a new value into the host's document.
	OnChange func(interface{})
}

// Options configures WithExpressions.
type Options struct {
	// Evaluator evaluates expressions.  Defaults to
	// DefaultEvaluators[DefaultEvaluatorName].
	Evaluator Evaluator

	// Scope supplies the ambient variables.  Defaults to an empty
	// root provider.
	Scope *ScopeProvider

	// Debounce is the expression-edit debounce window.  Zero
	// means DefaultDebounce; negative means evaluate immediately
	// (useful in tests).
	Debounce time.Duration
}

func (o *Options) norm() *Options {
	if o == nil {
		o = &Options{}
	}
	acc := *o
	if acc.Evaluator == nil {
		// Ignore the lookup error: a nil Evaluator surfaces
		// later as a per-field evaluation failure rather than
		// failing the whole transformation.
		acc.Evaluator, _ = FindEvaluator(nil, DefaultEvaluatorName)
	}
	if acc.Scope == nil {
		acc.Scope = NewScopeProvider(nil)
	}
	if acc.Debounce == 0 {
		acc.Debounce = DefaultDebounce
	}
	return &acc
}

// WithExpressions returns a new Config in which every primitive field
// can switch between a literal value and an expression.
//
// Primitive fields are replaced by custom fields whose render
// callback delegates to a FieldEditor; every other field type passes
// through completely unchanged.  Each component's Render function is
// wrapped so that Resolve runs over the incoming props exactly once,
// immediately before the original Render executes.  Rendered
// components therefore stay entirely unaware that expressions exist.
//
// A component with no field-definition map is passed through
// unchanged, Render included: with nothing to wrap, there can be no
// wrapped props to strip.
//
// The input Config is not mutated.  Nil components and nil field
// entries are dropped rather than reported: the transformation favors
// availability over strictness.
func WithExpressions(config *Config, opts *Options) *Config {
	if config == nil {
		return &Config{Components: map[string]*Component{}}
	}

	opts = opts.norm()
	editors := NewEditors(opts)

	acc := &Config{
		Components: make(map[string]*Component, len(config.Components)),
	}

	for name, c := range config.Components {
		if c == nil {
			continue
		}

		nc := c.Copy()

		if c.Fields == nil {
			// No field-definition map: nothing to wrap, and
			// the render stays the original, wrapped props
			// and all.
			acc.Components[name] = nc
			continue
		}

		nc.Fields = make(map[string]*Field, len(c.Fields))
		for fname, f := range c.Fields {
			if f == nil {
				continue
			}
			if !IsPrimitiveType(f.Type) {
				nc.Fields[fname] = f.Copy()
				continue
			}
			nc.Fields[fname] = wrapField(f, editors)
		}

		nc.Render = wrapRender(name, c.Render)

		acc.Components[name] = nc
	}

	return acc
}

// wrapField replaces a primitive field with a custom field whose
// editor is a FieldEditor for the original definition.
func wrapField(f *Field, editors *Editors) *Field {
	orig := f.Copy()

	return &Field{
		Type:    FieldTypeCustom,
		Label:   f.Label,
		Doc:     f.Doc,
		Meta:    f.Meta,
		Options: nil,
		Render: func(p *FieldEditorProps) (interface{}, error) {
			p.Field = orig
			return editors.Render(p)
		},
	}
}

// wrapRender is the only place resolution happens.
func wrapRender(name string, render RenderFunc) RenderFunc {
	return func(props map[string]interface{}) (interface{}, error) {
		if render == nil {
			return nil, &NoRender{name}
		}
		resolved, _ := Resolve(props).(map[string]interface{})
		return render(resolved)
	}
}
