package evaluators

import (
	"github.com/fieldexpr/fieldexpr/core"
	"github.com/fieldexpr/fieldexpr/evaluators/ecmascript"
	"github.com/fieldexpr/fieldexpr/evaluators/jsonata"
	"github.com/fieldexpr/fieldexpr/evaluators/noop"
)

// Standard gives the full set of in-tree evaluators.
func Standard() core.EvaluatorsMap {
	es := core.NewEvaluatorsMap()

	es["jsonata"] = jsonata.NewEvaluator()

	es["ecmascript"] = ecmascript.NewEvaluator()
	es["ecmascript-5.1"] = es["ecmascript"]

	n := noop.NewEvaluator()
	n.Silent = true
	es["noop"] = n

	return es
}
