// Package core provides the core gear for binding component
// properties to dynamically evaluated expressions.
//
// A component configuration (Config) declares components, each with a
// map of Fields and a Render function.  WithExpressions() transforms
// a Config so that every primitive field (text, textarea, number,
// select, radio) can hold either a literal value or an expression
// that is evaluated against an ambient Scope.
//
// The bookkeeping for one field value is a WrappedValue, which
// records the current mode (static or dynamic), the value the
// rendering code should see, the expression source (if any), the last
// literal the user typed, and the last evaluation error (if any).
// WrappedValues are produced and mutated by FieldEditors and are
// stripped out again by Resolve() immediately before a component's
// original Render function runs.  Render functions therefore never
// see a WrappedValue: they receive plain values only.
//
// Expression evaluation is delegated to an Evaluator, which arbitrary
// engines can implement.  See the 'evaluators' packages for a JSONata
// engine (the default) and an ECMAScript engine.  Evaluation failures
// never propagate: they surface as an error string on the owning
// WrappedValue while the last good value remains in place.
//
// To use this package, build a Config, call WithExpressions(), and
// hand the result to the host editor.  The host persists whatever the
// field editors write back via OnChange; on the next render, Resolve
// re-derives plain props from those persisted WrappedValues.
package core
