package core

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/fieldexpr/fieldexpr/util/testutil"
)

// mapEval is an Evaluator for tests: expressions are looked up in a
// map, and an expression can optionally block on a gate channel so a
// test can control completion order.
type mapEval struct {
	sync.Mutex

	values map[string]interface{}
	fail   map[string]string
	gates  map[string]chan interface{}
	calls  []string
}

func newMapEval() *mapEval {
	return &mapEval{
		values: make(map[string]interface{}),
		fail:   make(map[string]string),
		gates:  make(map[string]chan interface{}),
	}
}

func (e *mapEval) Compile(ctx context.Context, src string) (interface{}, error) {
	return nil, nil
}

func (e *mapEval) Eval(ctx context.Context, src string, scope Scope, compiled interface{}) (interface{}, error) {
	e.Lock()
	e.calls = append(e.calls, src)
	gate := e.gates[src]
	v, msg := e.values[src], e.fail[src]
	e.Unlock()

	if gate != nil {
		v = <-gate
	}
	if msg != "" {
		return nil, &evalError{msg}
	}
	if v == nil {
		// Scope lookup as a fallback, so tests can exercise
		// ambient variables.
		return scope[src], nil
	}
	return v, nil
}

func (e *mapEval) Calls() []string {
	e.Lock()
	acc := make([]string, len(e.calls))
	copy(acc, e.calls)
	e.Unlock()
	return acc
}

type evalError struct {
	msg string
}

func (e *evalError) Error() string {
	return e.msg
}

func testEditor(ev Evaluator, scope Scope, debounce time.Duration) (*FieldEditor, *[]interface{}) {
	ed := NewFieldEditor("inst.f", &Field{Type: FieldTypeText}, &Options{
		Evaluator: ev,
		Scope:     NewScopeProvider(scope),
		Debounce:  debounce,
	})
	written := make([]interface{}, 0, 8)
	ed.Sync("Hello", func(x interface{}) {
		written = append(written, x)
	})
	return ed, &written
}

func TestEditorStaticEdit(t *testing.T) {
	ev := newMapEval()
	ed, _ := testEditor(ev, nil, -1)

	if err := ed.SetStatic("Howdy"); err != nil {
		t.Fatal(err)
	}
	w := ed.Value()
	if w.Value != "Howdy" || w.StaticValue != "Howdy" {
		t.Fatal(JS(w))
	}

	// A static edit is not reachable in dynamic mode.
	ed.SetMode(Dynamic)
	if err := ed.SetStatic("nope"); err == nil {
		t.Fatal("expected WrongMode")
	} else if _, is := err.(*WrongMode); !is {
		t.Fatal(err)
	}
}

func TestEditorStaticPurity(t *testing.T) {
	// While static, no evaluation is ever triggered, even when an
	// expression is present in the metadata.
	ev := newMapEval()
	ed, _ := testEditor(ev, nil, -1)

	ed.Sync(Dwimjs(`{"mode":"static","value":"v","expression":"a.b"}`), nil)
	ed.SetStatic("v2")
	ed.Flush()
	ed.Wait()

	if calls := ev.Calls(); len(calls) != 0 {
		t.Fatal(calls)
	}
}

func TestEditorModeToggle(t *testing.T) {
	ev := newMapEval()
	ev.values["greeting"] = "Bonjour"
	ed, _ := testEditor(ev, nil, -1)

	ed.SetStatic("Howdy")
	ed.SetMode(Dynamic)
	if err := ed.SetExpression(context.Background(), "greeting"); err != nil {
		t.Fatal(err)
	}
	ed.Wait()

	w := ed.Value()
	if w.Value != "Bonjour" {
		t.Fatal(JS(w))
	}

	// Toggling back to static restores the retained literal, and
	// the expression survives for the next toggle.
	ed.SetMode(Static)
	w = ed.Value()
	if w.Value != "Howdy" || w.Expression != "greeting" {
		t.Fatal(JS(w))
	}

	if m := ed.Toggle(); m != Dynamic {
		t.Fatal(m)
	}
}

func TestEditorBadMode(t *testing.T) {
	ev := newMapEval()
	ed, _ := testEditor(ev, nil, -1)
	if err := ed.SetMode("sometimes"); err == nil {
		t.Fatal("expected BadMode")
	} else if _, is := err.(*BadMode); !is {
		t.Fatal(err)
	}
}

func TestEditorDebounceCoalescing(t *testing.T) {
	// Rapid edits within the debounce window evaluate at most
	// once, using the last edit's text.
	ev := newMapEval()
	ev.values["third"] = "3"
	ed, _ := testEditor(ev, nil, time.Hour)
	ctx := context.Background()

	ed.SetMode(Dynamic)
	ed.SetExpression(ctx, "first")
	ed.SetExpression(ctx, "second")
	ed.SetExpression(ctx, "third")
	ed.Flush()
	ed.Wait()

	calls := ev.Calls()
	if len(calls) != 1 || calls[0] != "third" {
		t.Fatal(calls)
	}
	if w := ed.Value(); w.Value != "3" {
		t.Fatal(JS(w))
	}
}

func TestEditorStaleSuppression(t *testing.T) {
	// Edit A is slow, edit B is fast.  Even though A completes
	// after B, the final value is B's.
	ev := newMapEval()
	slow := make(chan interface{}, 1)
	fast := make(chan interface{}, 1)
	ev.gates["slowExpr"] = slow
	ev.gates["fastExpr"] = fast

	ed, _ := testEditor(ev, nil, -1)
	ctx := context.Background()

	ed.SetMode(Dynamic)
	ed.SetExpression(ctx, "slowExpr")
	ed.SetExpression(ctx, "fastExpr")

	fast <- "B"
	slow <- "A"
	ed.Wait()

	if w := ed.Value(); w.Value != "B" {
		t.Fatal(JS(w))
	}
}

func TestEditorEvaluationFailure(t *testing.T) {
	ev := newMapEval()
	ev.values["good"] = "ok"
	ev.fail["bad"] = "invalid..syntax.."
	ed, _ := testEditor(ev, nil, -1)
	ctx := context.Background()

	ed.SetMode(Dynamic)
	ed.SetExpression(ctx, "good")
	ed.Wait()

	ed.SetExpression(ctx, "bad")
	ed.Wait()

	w := ed.Value()
	if w.Value != "ok" {
		t.Fatal(JS(w)) // last good value must be retained
	}
	if !strings.Contains(w.Error, "evaluation failed") {
		t.Fatal(w.Error)
	}

	// A later successful evaluation for a new edit clears the
	// error.
	ed.SetExpression(ctx, "good")
	ed.Wait()
	if w = ed.Value(); w.Error != "" {
		t.Fatal(w.Error)
	}
}

func TestEditorModeSwitchDiscardsInflight(t *testing.T) {
	ev := newMapEval()
	gate := make(chan interface{}, 1)
	ev.gates["pending"] = gate

	ed, _ := testEditor(ev, nil, -1)
	ctx := context.Background()

	ed.SetMode(Dynamic)
	ed.SetExpression(ctx, "pending")
	ed.SetMode(Static)
	gate <- "late"
	ed.Wait()

	if w := ed.Value(); w.Value == "late" {
		t.Fatal("stale completion applied after mode switch")
	}
}

func TestEditorCoercion(t *testing.T) {
	t.Run("objectIntoText", func(t *testing.T) {
		ev := newMapEval()
		ev.values["obj"] = Dwimjs(`{"a":1}`)
		ed, _ := testEditor(ev, nil, -1)
		ctx := context.Background()

		ed.SetMode(Dynamic)
		ed.SetExpression(ctx, "obj")
		ed.Wait()

		if w := ed.Value(); w.Value != "{\n  \"a\": 1\n}" {
			t.Fatal(JS(w))
		}
	})

	t.Run("junkIntoNumber", func(t *testing.T) {
		ev := newMapEval()
		ev.values["junk"] = "abc"
		ed := NewFieldEditor("inst.n", &Field{Type: FieldTypeNumber}, &Options{
			Evaluator: ev,
			Debounce:  -1,
		})
		ed.Sync(1.0, nil)
		ctx := context.Background()

		ed.SetMode(Dynamic)
		ed.SetExpression(ctx, "junk")
		ed.Wait()

		if w := ed.Value(); w.Value != 0.0 {
			t.Fatal(JS(w))
		}
	})
}

func TestEditorScope(t *testing.T) {
	ev := newMapEval()
	ed, _ := testEditor(ev, Scope{"user": "Homer"}, -1)
	ctx := context.Background()

	ed.SetMode(Dynamic)
	ed.SetExpression(ctx, "user")
	ed.Wait()

	if w := ed.Value(); w.Value != "Homer" {
		t.Fatal(JS(w))
	}
}

func TestEditorWriteBack(t *testing.T) {
	ev := newMapEval()
	ed, written := testEditor(ev, nil, -1)

	ed.SetStatic("Howdy")

	if len(*written) == 0 {
		t.Fatal("no write-back")
	}
	w, is := (*written)[0].(*WrappedValue)
	if !is {
		t.Fatalf("%#v", (*written)[0])
	}
	if w.Value != "Howdy" || w.Mode != Static {
		t.Fatal(JS(w))
	}
}

func TestEditorEmptyExpression(t *testing.T) {
	// "No expression entered yet" shouldn't schedule anything.
	ev := newMapEval()
	ed, _ := testEditor(ev, nil, -1)

	ed.SetMode(Dynamic)
	ed.SetExpression(context.Background(), "")
	ed.Flush()
	ed.Wait()

	if calls := ev.Calls(); len(calls) != 0 {
		t.Fatal(calls)
	}
}
