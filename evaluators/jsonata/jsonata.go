package jsonata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldexpr/fieldexpr/core"

	jsonata "github.com/blues/jsonata-go"
)

// init adds an Evaluator as one of the core.DefaultEvaluators.
func init() {
	core.DefaultEvaluators["jsonata"] = NewEvaluator()
}

// Evaluator implements core.Evaluator using JSONata, a JSON query and
// transformation language: path navigation, $-prefixed built-in
// functions and variables, object/array constructors, filtering, and
// higher-order array functions.
//
// See https://jsonata.org and https://github.com/blues/jsonata-go.
//
// The Scope plays two roles.  It is the input document, so a plain
// path like 'user.name' navigates into it.  Its entries are also
// registered as JSONata variables, so '$user.name' works too, as do
// the reserved array-context bindings '$item' and '$index'.
type Evaluator struct{}

// NewEvaluator makes a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Compile parses the expression.
//
// A compiled expression can be Eval()ed many times, but note that
// variable registration mutates it, so don't share one compilation
// across concurrent Evals with different scopes.  The field editors
// don't: they pass a nil compilation and let Eval compile per call.
func (e *Evaluator) Compile(ctx context.Context, src string) (x interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jsonata compile panic: %v", r)
		}
	}()

	return jsonata.Compile(src)
}

// Eval implements the Evaluator method of the same name.
//
// A JSONata expression that comes up undefined (a missing variable or
// path, say) is not an error: the result is just nil.
func (e *Evaluator) Eval(ctx context.Context, src string, scope core.Scope, compiled interface{}) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("jsonata eval panic: %v", r)
		}
	}()

	if compiled == nil {
		if compiled, err = e.Compile(ctx, src); err != nil {
			return nil, err
		}
	}
	expr, is := compiled.(*jsonata.Expr)
	if !is {
		return nil, fmt.Errorf("jsonata bad compilation: %T", compiled)
	}

	if scope == nil {
		scope = core.NewScope()
	}

	// Register every scope entry as a variable.  A leading '$' in
	// the scope key is dropped: '$item' in the Scope is '$item'
	// in an expression.
	vars := make(map[string]interface{}, len(scope))
	for k, val := range scope {
		vars[strings.TrimPrefix(k, "$")] = val
	}
	if 0 < len(vars) {
		if err = expr.RegisterVars(vars); err != nil {
			return nil, err
		}
	}

	v, err = expr.Eval(map[string]interface{}(scope))
	if err != nil {
		if errors.Is(err, jsonata.ErrUndefined) {
			return nil, nil
		}
		return nil, err
	}

	return v, nil
}
