package core

import (
	"context"
	"errors"
	"fmt"
)

var (
	// EvaluatorNotFound occurs when you ask for an evaluator by
	// name and the given map of evaluators doesn't have it.
	EvaluatorNotFound = errors.New("evaluator not found")

	// DefaultEvaluators is the registry that evaluator packages
	// add themselves to in their init()s.
	DefaultEvaluators = make(map[string]Evaluator)

	// DefaultEvaluatorName is the registry key WithExpressions
	// falls back to when its Options don't name an Evaluator.
	DefaultEvaluatorName = "jsonata"

	// EvalFailedPrefix starts every Outcome.Error so that an
	// evaluation failure is identifiable no matter which engine
	// produced it.
	EvalFailedPrefix = "evaluation failed: "
)

// Evaluator evaluates one expression against one Scope.
//
// An Evaluator holds no caller state.  Repeated calls with identical
// inputs may be re-executed; caching, if any, belongs to the caller.
type Evaluator interface {
	// Compile can make something that helps when Eval()ing the
	// expression later.
	Compile(ctx context.Context, src string) (interface{}, error)

	// Eval evaluates the expression.  The result of a previous
	// Compile() might be provided.
	//
	// A missing variable is not an error: the engine should
	// return (nil, nil) for an undefined result.
	Eval(ctx context.Context, src string, scope Scope, compiled interface{}) (interface{}, error)
}

// EvaluatorsMap maps evaluator names to Evaluators.
type EvaluatorsMap map[string]Evaluator

func NewEvaluatorsMap() EvaluatorsMap {
	return make(EvaluatorsMap, 4)
}

// FindEvaluator looks up an evaluator by name, defaulting to
// DefaultEvaluators when the given map is nil.
func FindEvaluator(evaluators EvaluatorsMap, name string) (Evaluator, error) {
	if evaluators == nil {
		evaluators = DefaultEvaluators
	}
	ev, have := evaluators[name]
	if !have {
		return nil, EvaluatorNotFound
	}
	return ev, nil
}

// Outcome is the result of one evaluation.
//
// Exactly one of Value and Error is meaningful; OK says which.  An
// undefined result (a missing variable, say) is a success with a nil
// Value.
type Outcome struct {
	OK    bool        `json:"ok"`
	Value interface{} `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Evaluate runs one expression against one Scope and never panics or
// returns an error: any compilation or evaluation failure (including
// a panicking engine) comes back as a failure Outcome whose Error
// starts with EvalFailedPrefix.
func Evaluate(ctx context.Context, ev Evaluator, src string, scope Scope) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = failure(fmt.Sprintf("%v", r))
		}
	}()

	if ev == nil {
		return failure(EvaluatorNotFound.Error())
	}

	v, err := ev.Eval(ctx, src, scope, nil)
	if err != nil {
		return failure(err.Error())
	}

	return Outcome{
		OK:    true,
		Value: v,
	}
}

func failure(msg string) Outcome {
	return Outcome{
		Error: EvalFailedPrefix + msg,
	}
}
