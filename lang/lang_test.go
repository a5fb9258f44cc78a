package lang

import (
	"strings"
	"testing"
)

func TestCompletions(t *testing.T) {
	t.Run("prefix", func(t *testing.T) {
		cs := Completions("$su")
		if len(cs) == 0 {
			t.Fatal("no completions")
		}
		for _, c := range cs {
			if !strings.HasPrefix(strings.ToLower(c.Label), "$su") {
				t.Fatal(c.Label)
			}
		}
		// $substring, $substringAfter, $substringBefore, $sum
		if len(cs) != 4 {
			t.Fatalf("%d: %#v", len(cs), cs)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := Completions("")
		b := Completions("")
		if len(a) != len(b) {
			t.Fatal("nondeterministic")
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatal(a[i], b[i])
			}
		}
	})

	t.Run("keywords", func(t *testing.T) {
		cs := Completions("an")
		found := false
		for _, c := range cs {
			if c.Label == "and" && c.Kind == "keyword" {
				found = true
			}
		}
		if !found {
			t.Fatalf("%#v", cs)
		}
	})
}

func TestHover(t *testing.T) {
	f, have := Hover("$map")
	if !have {
		t.Fatal("no $map")
	}
	if f.Category != "higher-order" || f.Signature == "" {
		t.Fatalf("%#v", f)
	}

	// Leading '$' is optional.
	if _, have = Hover("sum"); !have {
		t.Fatal("no sum")
	}

	if _, have = Hover("$nope"); have {
		t.Fatal("found $nope")
	}
}

func TestTables(t *testing.T) {
	seen := make(map[string]bool, len(Functions))
	for _, f := range Functions {
		if !strings.HasPrefix(f.Name, "$") {
			t.Fatal(f.Name)
		}
		if seen[f.Name] {
			t.Fatal("duplicate " + f.Name)
		}
		seen[f.Name] = true
		if f.Signature == "" {
			t.Fatal(f.Name + " has no signature")
		}
	}
}
