package tools

import (
	"testing"
)

var testConfigYAML = []byte(`
components:
  heading:
    doc: |
      A **heading**.
    fields:
      text:
        type: text
        label: Text
      level:
        type: select
        label: Level
        options:
          - label: H1
            value: "1"
          - label: H2
            value: "2"
    defaultProps:
      text: Hello
      level: "1"
  layout:
    fields:
      children:
        type: blocks
        label: Children
`)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(testConfigYAML)
	if err != nil {
		t.Fatal(err)
	}

	h, have := cfg.Components["heading"]
	if !have {
		t.Fatal("no heading component")
	}

	if h.Doc == "" {
		t.Fatal("lost the doc")
	}

	f, have := h.Fields["level"]
	if !have {
		t.Fatal("no level field")
	}
	if f.Type != "select" {
		t.Fatal(f.Type)
	}
	if len(f.Options) != 2 {
		t.Fatal(f.Options)
	}
	if f.Options[1].Value != "2" {
		t.Fatal(f.Options[1])
	}

	if h.DefaultProps["text"] != "Hello" {
		t.Fatal(h.DefaultProps)
	}

	l, have := cfg.Components["layout"]
	if !have {
		t.Fatal("no layout component")
	}
	if l.Fields["children"].Type != "blocks" {
		t.Fatal(l.Fields["children"])
	}
}

func TestParseConfigNotMap(t *testing.T) {
	if _, err := ParseConfig([]byte(`- 1`)); err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseDocument(t *testing.T) {
	bs := []byte(`
blocks:
  - id: b0
    type: heading
    props:
      text:
        mode: dynamic
        expression: '"Hello, " & user'
        value: Hello
`)
	x, err := ParseDocument(bs)
	if err != nil {
		t.Fatal(err)
	}

	m, is := x.(map[string]interface{})
	if !is {
		t.Fatalf("%T", x)
	}
	blocks, is := m["blocks"].([]interface{})
	if !is || len(blocks) != 1 {
		t.Fatal(m["blocks"])
	}

	// Canonicalization: nested maps must be JSON-style.
	b, is := blocks[0].(map[string]interface{})
	if !is {
		t.Fatalf("%T", blocks[0])
	}
	props := b["props"].(map[string]interface{})
	w := props["text"].(map[string]interface{})
	if w["mode"] != "dynamic" {
		t.Fatal(w)
	}
}

func TestParseConfigBadYAML(t *testing.T) {
	if _, err := ParseConfig([]byte("components:\n\tbad: tabs")); err == nil {
		t.Fatal("expected an error")
	}
}
