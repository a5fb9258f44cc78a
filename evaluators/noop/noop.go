package noop

import (
	"context"
	"log"

	"github.com/fieldexpr/fieldexpr/core"
)

// Evaluator is a core.Evaluator which just returns the expression
// source without evaluating anything.  Useful in tests and tools that
// don't care about expression semantics.
type Evaluator struct {
	// Silent, if true, will suppress warning log messages.
	Silent bool
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) Compile(ctx context.Context, src string) (interface{}, error) {
	if !e.Silent {
		log.Printf("warning: using noop.Evaluator for compilation")
	}
	return nil, nil
}

func (e *Evaluator) Eval(ctx context.Context, src string, scope core.Scope, compiled interface{}) (interface{}, error) {
	if !e.Silent {
		log.Printf("warning: using noop.Evaluator for evaluation")
	}
	return src, nil
}
