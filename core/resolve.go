package core

import (
	"context"
	"log"
	"reflect"
)

// LogCycles, if true, emits a log message whenever Resolve encounters
// a container it has already visited.
var LogCycles = false

// Resolve recursively replaces every WrappedValue in the given tree
// with its plain Value.
//
// The input is never mutated: arrays and maps are rebuilt fresh, so a
// resolved tree shares no container with its source.  A value that is
// not a container comes back unchanged.
//
// Cyclic input is pathological but not fatal: a container that has
// already been visited during this resolution is returned as-is,
// which breaks the cycle without raising an error.
func Resolve(x interface{}) interface{} {
	return ResolveVisited(x, nil)
}

// ResolveVisited is Resolve with an explicit visited set, which is
// keyed by container identity (not by deep equality, which would be
// far too slow).  The set is scoped to one top-level resolution.
func ResolveVisited(x interface{}, visited map[uintptr]bool) interface{} {
	if x == nil {
		return nil
	}

	if visited == nil {
		visited = make(map[uintptr]bool, 8)
	}

	if id, have := identity(x); have {
		if visited[id] {
			if LogCycles {
				log.Printf("core.Resolve revisiting %T (cycle?)", x)
			}
			return x
		}
		visited[id] = true
	}

	if w, is := AsWrapped(x); is {
		v := w.Value
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			// An expression can evaluate to a compound
			// value that itself contains wrapped values.
			return ResolveVisited(v, visited)
		}
		return v
	}

	switch vv := x.(type) {
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, y := range vv {
			acc[i] = ResolveVisited(y, visited)
		}
		return acc
	case map[string]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, y := range vv {
			acc[k] = ResolveVisited(y, visited)
		}
		return acc
	}

	return x
}

// ResolveDynamic resolves a tree whose dynamic values haven't been
// through a FieldEditor: each dynamic WrappedValue's expression is
// evaluated against the given scope before extraction.
//
// A failed evaluation falls back to the WrappedValue's current Value,
// so a bad expression degrades to the last good value rather than
// poisoning the whole tree.
func ResolveDynamic(ctx context.Context, x interface{}, ev Evaluator, scope Scope) interface{} {
	return Resolve(EvaluateTree(ctx, x, ev, scope))
}

// EvaluateTree is the evaluation half of ResolveDynamic: every
// dynamic WrappedValue in the tree gets a fresh Value from its
// expression (or keeps its last good Value plus an Error message),
// but the wrappers stay in place.  EvaluateTree is to a server what
// a round of FieldEditor completions is to an editor session: the
// result is ready for Resolve, or for a Render wrapped by
// WithExpressions.
func EvaluateTree(ctx context.Context, x interface{}, ev Evaluator, scope Scope) interface{} {
	return evalTree(ctx, x, ev, scope, nil)
}

func evalTree(ctx context.Context, x interface{}, ev Evaluator, scope Scope, visited map[uintptr]bool) interface{} {
	if x == nil {
		return nil
	}

	if visited == nil {
		visited = make(map[uintptr]bool, 8)
	}

	if id, have := identity(x); have {
		if visited[id] {
			return x
		}
		visited[id] = true
	}

	if w, is := AsWrapped(x); is {
		if w.Mode != Dynamic || w.Expression == "" {
			return w
		}
		acc := w.Copy()
		if o := Evaluate(ctx, ev, w.Expression, scope); o.OK {
			acc.Value = o.Value
			acc.Error = ""
		} else {
			acc.Error = o.Error
		}
		return acc
	}

	switch vv := x.(type) {
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, y := range vv {
			acc[i] = evalTree(ctx, y, ev, scope, visited)
		}
		return acc
	case map[string]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, y := range vv {
			acc[k] = evalTree(ctx, y, ev, scope, visited)
		}
		return acc
	}

	return x
}

// identity gives a stable identity for containers that can
// participate in a cycle.  Empty containers can't, so they are not
// tracked (their backing pointers aren't unique anyway).
func identity(x interface{}) (uintptr, bool) {
	switch vv := x.(type) {
	case map[string]interface{}:
		if len(vv) == 0 {
			return 0, false
		}
		return reflect.ValueOf(vv).Pointer(), true
	case []interface{}:
		if len(vv) == 0 {
			return 0, false
		}
		return reflect.ValueOf(vv).Pointer(), true
	case *WrappedValue:
		if vv == nil {
			return 0, false
		}
		return reflect.ValueOf(vv).Pointer(), true
	}
	return 0, false
}
