package core

import (
	"testing"

	. "github.com/fieldexpr/fieldexpr/util/testutil"
)

func TestIsWrapped(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		if !IsWrapped(&WrappedValue{Mode: Static, Value: "x"}) {
			t.Fatal("pointer not recognized")
		}
	})

	t.Run("map", func(t *testing.T) {
		x := Dwimjs(`{"mode":"dynamic","value":1,"expression":"a.b"}`)
		if !IsWrapped(x) {
			t.Fatal("map not recognized")
		}
	})

	t.Run("badMode", func(t *testing.T) {
		x := Dwimjs(`{"mode":"sometimes","value":1}`)
		if IsWrapped(x) {
			t.Fatal("bad mode recognized")
		}
	})

	t.Run("noValue", func(t *testing.T) {
		x := Dwimjs(`{"mode":"static"}`)
		if IsWrapped(x) {
			t.Fatal("missing value recognized")
		}
	})

	t.Run("literals", func(t *testing.T) {
		for _, x := range []interface{}{nil, "static", 42.0, true, []interface{}{"mode"}} {
			if IsWrapped(x) {
				t.Fatalf("%#v recognized", x)
			}
		}
	})
}

func TestAsWrapped(t *testing.T) {
	x := Dwimjs(`{"mode":"dynamic","value":"v","expression":"user.name","staticValue":"s","error":"nope"}`)
	w, is := AsWrapped(x)
	if !is {
		t.Fatal("not recognized")
	}
	if w.Mode != Dynamic {
		t.Fatal(w.Mode)
	}
	if w.Value != "v" || w.Expression != "user.name" || w.StaticValue != "s" || w.Error != "nope" {
		t.Fatal(JS(w))
	}
}

func TestNormalize(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		w := Normalize("Hello")
		if w.Mode != Static {
			t.Fatal(w.Mode)
		}
		if w.Value != "Hello" || w.StaticValue != "Hello" {
			t.Fatal(JS(w))
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		given := &WrappedValue{
			Mode:       Dynamic,
			Value:      "v",
			Expression: "a",
		}
		w := Normalize(given)
		if w.Mode != Dynamic || w.Expression != "a" {
			t.Fatal(JS(w))
		}
		if w == given {
			t.Fatal("not copied")
		}
	})
}

func TestWrappedMap(t *testing.T) {
	w := &WrappedValue{
		Mode:        Dynamic,
		Value:       "v",
		Expression:  "a.b",
		StaticValue: "s",
	}
	m := w.Map()
	if !IsWrapped(m) {
		t.Fatal("map form not recognized")
	}
	if _, have := m["error"]; have {
		t.Fatal("empty error serialized")
	}
	back, is := AsWrapped(m)
	if !is || back.Expression != w.Expression || back.StaticValue != w.StaticValue {
		t.Fatal(JS(back))
	}
}
