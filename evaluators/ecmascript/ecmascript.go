package ecmascript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/fieldexpr/fieldexpr/core"

	"github.com/dop251/goja"
	"github.com/gorhill/cronexpr"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Eval if the execution is
	// interrupted (via context cancelation).
	Interrupted = errors.New(InterruptedMessage)
)

// init adds an Evaluator as one of the core.DefaultEvaluators.
func init() {
	core.DefaultEvaluators["ecmascript"] = NewEvaluator()
}

// Evaluator implements core.Evaluator using Goja, which is a Go
// implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
//
// The expression is evaluated as a single ECMAScript expression, not
// a program.  Scope entries appear as global variables (a key like
// "$item" is the legal identifier $item), and the whole Scope is also
// reachable at _.scope.  Unlike JSONata, a reference to an unknown
// identifier is an evaluation error under this engine.
type Evaluator struct{}

// NewEvaluator makes a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\nreturn (%s\n);\n}());\n", src)
}

// Compile calls goja.Compile on the wrapped expression.
func (e *Evaluator) Compile(ctx context.Context, src string) (interface{}, error) {
	obj, err := goja.Compile("", wrapSrc(src), true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + src)
	}
	return obj, nil
}

// Eval implements the Evaluator method of the same name.
//
// The following utilities are available from the runtime at _:
//
//	scope: the map of the current Scope.
//	esc(s): URL query-escape the given string.
//	cronNext(c): the next firing time for the cron expression c,
//	  as an RFC3339Nano string.
//	log(x): log x as JSON; returns x.
func (e *Evaluator) Eval(ctx context.Context, src string, scope core.Scope, compiled interface{}) (interface{}, error) {
	var p *goja.Program
	if compiled == nil {
		var err error
		if compiled, err = e.Compile(ctx, src); err != nil {
			return nil, err
		}
	}
	var is bool
	if p, is = compiled.(*goja.Program); !is {
		return nil, fmt.Errorf("goja bad compilation: %T %#v", compiled, compiled)
	}

	o := goja.New()

	env := map[string]interface{}{}
	if scope == nil {
		env["scope"] = map[string]interface{}{}
	} else {
		env["scope"] = map[string]interface{}(scope.Copy())
		for k, v := range scope {
			o.Set(k, v)
		}
	}

	o.Set("_", env)

	env["esc"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		s, is := x.(string)
		if !is {
			protest(o, "not a string")
		}
		return url.QueryEscape(s)
	}

	env["cronNext"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		cronExpr, is := x.(string)
		if !is {
			protest(o, "not a string")
		}

		c, err := cronexpr.Parse(cronExpr)
		if err != nil {
			protest(o, err.Error())
		}
		return c.Next(time.Now()).UTC().Format(time.RFC3339Nano)
	}

	env["log"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			log.Println("ecmascript.log (can't marshal: " + err.Error() + ")")
		} else {
			log.Println(string(js))
		}
		return x
	}

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If Eval calls cancel() after RunProgram returns,
		// we'll never see this InterruptedMessage, which is
		// the behavior we want.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := o.RunProgram(p)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return nil, Interrupted
		}
		return nil, err
	}

	x := v.Export()
	if x == nil {
		return nil, nil
	}

	// Canonicalize so downstream code sees the same shapes JSON
	// would produce (goja likes to export int64s, for example).
	return core.Canonicalize(x)
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}
