// Package lang provides JSONata language metadata for pluggable
// code-editor widgets: keywords, operators, and built-in function
// signatures with documentation.
//
// The tables are static and mechanical.  An editor widget (external
// to this repo) can feed them to its tokenizer, completion provider,
// and hover provider; nothing here depends on any particular widget.
package lang

import (
	"sort"
	"strings"
)

// Function describes one JSONata built-in function.
type Function struct {
	// Name includes the leading '$'.
	Name string `json:"name"`

	Signature string `json:"signature"`

	// Doc is a one-line description suitable for completion
	// detail and hover text.
	Doc string `json:"doc,omitempty"`

	// Category is "string", "numeric", "aggregation", "boolean",
	// "array", "object", "date", or "higher-order".
	Category string `json:"category,omitempty"`
}

// Operator describes one JSONata operator.
type Operator struct {
	Symbol string `json:"symbol"`
	Doc    string `json:"doc,omitempty"`
}

// Keywords are the JSONata reserved words.
var Keywords = []string{
	"and",
	"or",
	"in",
	"true",
	"false",
	"null",
	"function",
}

// Operators are the JSONata operators.
var Operators = []Operator{
	{".", "path navigation"},
	{"[", "array filter/index"},
	{"]", "array filter/index"},
	{"{", "object constructor"},
	{"}", "object constructor"},
	{"^", "order-by"},
	{"*", "wildcard / multiplication"},
	{"**", "descendant wildcard"},
	{"%", "parent / modulo"},
	{"#", "positional variable binding"},
	{"@", "context variable binding"},
	{"&", "string concatenation"},
	{"?", "conditional"},
	{":", "conditional"},
	{":=", "variable binding"},
	{"~>", "chain (function application)"},
	{"=", "equals"},
	{"!=", "not equals"},
	{"<", "less than"},
	{"<=", "less than or equal"},
	{">", "greater than"},
	{">=", "greater than or equal"},
	{"+", "addition"},
	{"-", "subtraction / negation"},
	{"/", "division"},
	{"..", "range"},
}

// Completion is one completion item for an editor widget.
type Completion struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"` // "function" or "keyword"
	Detail string `json:"detail,omitempty"`
	Doc    string `json:"doc,omitempty"`
}

// Completions gives the completion items whose labels start with the
// given prefix (case-insensitive; empty prefix means everything), in
// deterministic order: functions first, then keywords, each sorted.
func Completions(prefix string) []Completion {
	lp := strings.ToLower(prefix)

	acc := make([]Completion, 0, len(Functions)+len(Keywords))
	for _, f := range Functions {
		if !strings.HasPrefix(strings.ToLower(f.Name), lp) {
			continue
		}
		acc = append(acc, Completion{
			Label:  f.Name,
			Kind:   "function",
			Detail: f.Signature,
			Doc:    f.Doc,
		})
	}
	for _, k := range Keywords {
		if !strings.HasPrefix(k, lp) {
			continue
		}
		acc = append(acc, Completion{
			Label: k,
			Kind:  "keyword",
		})
	}

	sort.SliceStable(acc, func(i, j int) bool {
		if acc[i].Kind != acc[j].Kind {
			return acc[i].Kind == "function"
		}
		return acc[i].Label < acc[j].Label
	})

	return acc
}

// Hover looks up the function with the given name (with or without
// the leading '$').
func Hover(name string) (Function, bool) {
	if !strings.HasPrefix(name, "$") {
		name = "$" + name
	}
	for _, f := range Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}
