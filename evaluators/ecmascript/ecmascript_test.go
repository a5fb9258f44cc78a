package ecmascript

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fieldexpr/fieldexpr/core"

	. "github.com/fieldexpr/fieldexpr/util/testutil"
)

func TestArithmetic(t *testing.T) {
	o := core.Evaluate(context.Background(), NewEvaluator(), "1+2", nil)
	if !o.OK || JS(o.Value) != "3" {
		t.Fatal(JS(o))
	}
}

func TestScopeGlobals(t *testing.T) {
	scope := core.Scope{
		"user": map[string]interface{}{
			"name": "Homer",
		},
	}
	o := core.Evaluate(context.Background(), NewEvaluator(), `user.name.toUpperCase()`, scope)
	if !o.OK || o.Value != "HOMER" {
		t.Fatal(JS(o))
	}
}

func TestItemVariable(t *testing.T) {
	scope := core.NewScope().WithItem("donut", 3)
	o := core.Evaluate(context.Background(), NewEvaluator(), `$item + "/" + $index`, scope)
	if !o.OK || o.Value != "donut/3" {
		t.Fatal(JS(o))
	}
}

func TestObjectResult(t *testing.T) {
	o := core.Evaluate(context.Background(), NewEvaluator(), `{a: 1}`, nil)
	if !o.OK || JS(o.Value) != `{"a":1}` {
		t.Fatal(JS(o))
	}
}

func TestUnknownIdentifier(t *testing.T) {
	// Unlike JSONata, this engine treats an unknown identifier as
	// an error, which surfaces on the wrapped value, not as a
	// panic.
	o := core.Evaluate(context.Background(), NewEvaluator(), "nothing.here", nil)
	if o.OK || !strings.Contains(o.Error, "evaluation failed") {
		t.Fatal(JS(o))
	}
}

func TestInterrupt(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewEvaluator().Eval(ctx, "while(true){}", nil, nil)
	if err != Interrupted {
		t.Fatal(err)
	}
}
