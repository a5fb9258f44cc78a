package main

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"

	"github.com/fieldexpr/fieldexpr/cmd/demo/storage"
	"github.com/fieldexpr/fieldexpr/core"
	"github.com/fieldexpr/fieldexpr/evaluators"
)

// Service renders stored documents against the current ambient scope
// and pushes the results at anyone listening.
type Service struct {
	Verbose bool

	store     storage.Storage
	evaluator core.Evaluator
	provider  *core.ScopeProvider

	// config is the authoring-time catalog; live is that config
	// with expression support layered on, and is what rendering
	// goes through.
	config *core.Config
	live   *core.Config

	// ops is the firehose: re-rendered documents, scope updates,
	// errors.
	ops chan interface{}

	scopeMu sync.Mutex
}

func NewService(ctx context.Context, store storage.Storage, evalName string) (*Service, error) {
	ev, err := core.FindEvaluator(evaluators.Standard(), evalName)
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:     store,
		evaluator: ev,
		provider:  core.NewScopeProvider(core.NewScope()),
		ops:       make(chan interface{}, 1024),
	}
	s.config = DemoConfig(s)
	s.live = core.WithExpressions(s.config, &core.Options{
		Evaluator: ev,
		Scope:     s.provider,
	})

	return s, nil
}

func (s *Service) Logf(format string, args ...interface{}) {
	if s.Verbose {
		log.Printf(format, args...)
	}
}

// Broadcast queues an op for the firehose.  Never blocks.
func (s *Service) Broadcast(x interface{}) {
	select {
	case s.ops <- x:
	default:
		log.Printf("Service.Broadcast dropped op %T", x)
	}
}

// SetScopeVar merges one variable into the ambient scope and
// announces the change.
func (s *Service) SetScopeVar(name string, value interface{}) {
	// Copy on write: renders read the current Scope without a
	// lock, so never mutate a published one.
	s.scopeMu.Lock()
	scope := s.provider.Scope().Copy().Extend(name, value)
	s.provider.Set(scope)
	s.scopeMu.Unlock()

	s.Logf("Service scope %s = %v", name, value)

	s.Broadcast(map[string]interface{}{
		"op":    "scope",
		"name":  name,
		"value": value,
	})
}

// MergeScope merges a map of variables into the ambient scope.
func (s *Service) MergeScope(vars map[string]interface{}) {
	for name, value := range vars {
		s.SetScopeVar(name, value)
	}
}

// RenderDocument loads a document and renders it to an HTML fragment.
//
// Dynamic props are evaluated against the current ambient scope, so
// the same document can render differently as the scope changes.
func (s *Service) RenderDocument(ctx context.Context, sid, did string) (string, error) {
	d, err := s.store.GetDoc(ctx, sid, did)
	if err != nil {
		return "", err
	}

	acc := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		h, err := s.RenderBlock(ctx, b)
		if err != nil {
			return "", err
		}
		acc = append(acc, h)
	}

	return strings.Join(acc, "\n"), nil
}

// RenderBlock renders one block: default props under stored props,
// dynamic values evaluated, then the transformed component's render
// func, which strips the wrappers on its way to the original render.
func (s *Service) RenderBlock(ctx context.Context, b *storage.Block) (string, error) {
	c, have := s.live.Components[b.Type]
	if !have {
		return "", fmt.Errorf("unknown component type \"%s\"", b.Type)
	}

	props := make(map[string]interface{}, len(c.DefaultProps)+len(b.Props))
	for k, v := range c.DefaultProps {
		props[k] = v
	}
	for k, v := range b.Props {
		props[k] = v
	}

	// There is no field editor on the server side, so evaluation
	// happens here instead of on debounced edits.
	scope := s.provider.Scope()
	evaluated := core.EvaluateTree(ctx, props, s.evaluator, scope).(map[string]interface{})

	x, err := c.Render(evaluated)
	if err != nil {
		return "", err
	}

	h, is := x.(string)
	if !is {
		return "", fmt.Errorf("component \"%s\" rendered a %T, not a string", b.Type, x)
	}
	return h, nil
}

// DemoConfig is a small component catalog: enough to exercise static
// and dynamic props, coercion, and per-item scopes.
func DemoConfig(s *Service) *core.Config {
	text := func(label string) *core.Field {
		return &core.Field{
			Type:  core.FieldTypeText,
			Label: label,
		}
	}

	return &core.Config{
		Components: map[string]*core.Component{
			"heading": {
				Doc: "A **heading**.",
				Fields: map[string]*core.Field{
					"text": text("Text"),
					"level": {
						Type:  core.FieldTypeSelect,
						Label: "Level",
						Options: []core.Option{
							{Label: "H1", Value: "1"},
							{Label: "H2", Value: "2"},
							{Label: "H3", Value: "3"},
						},
					},
				},
				DefaultProps: map[string]interface{}{
					"text":  "Heading",
					"level": "2",
				},
				Render: func(props map[string]interface{}) (interface{}, error) {
					level := core.Stringify(props["level"])
					if level == "" {
						level = "2"
					}
					return fmt.Sprintf("<h%s>%s</h%s>",
						level,
						html.EscapeString(core.Stringify(props["text"])),
						level), nil
				},
			},
			"paragraph": {
				Doc: "A paragraph of text.",
				Fields: map[string]*core.Field{
					"text": {
						Type:  core.FieldTypeTextarea,
						Label: "Text",
					},
				},
				DefaultProps: map[string]interface{}{
					"text": "",
				},
				Render: func(props map[string]interface{}) (interface{}, error) {
					return fmt.Sprintf("<p>%s</p>",
						html.EscapeString(core.Stringify(props["text"]))), nil
				},
			},
			"badge": {
				Doc: "A labeled number, like a counter.",
				Fields: map[string]*core.Field{
					"label": text("Label"),
					"count": {
						Type:  core.FieldTypeNumber,
						Label: "Count",
					},
				},
				DefaultProps: map[string]interface{}{
					"label": "",
					"count": 0,
				},
				Render: func(props map[string]interface{}) (interface{}, error) {
					return fmt.Sprintf(`<span class="badge">%s: %v</span>`,
						html.EscapeString(core.Stringify(props["label"])),
						core.Numberify(props["count"])), nil
				},
			},
			"list": {
				Doc: "Renders an item template once per item.  The " +
					"template sees `$item` and `$index`.",
				Fields: map[string]*core.Field{
					"items": {
						Type:  core.FieldTypeTextarea,
						Label: "Items",
						Doc:   "An array, usually from an expression.",
					},
					"itemTemplate": {
						Type:  core.FieldTypeText,
						Label: "Item template",
						Doc:   "An expression evaluated once per item.",
					},
				},
				DefaultProps: map[string]interface{}{
					"itemTemplate": "$item",
				},
				Render: func(props map[string]interface{}) (interface{}, error) {
					items, _ := props["items"].([]interface{})
					template := core.Stringify(props["itemTemplate"])

					acc := make([]string, 0, len(items)+2)
					acc = append(acc, "<ul>")
					for i, item := range items {
						scope := s.provider.Scope().WithItem(item, i)
						o := core.Evaluate(context.Background(), s.evaluator, template, scope)
						v := item
						if o.OK {
							v = o.Value
						}
						acc = append(acc, fmt.Sprintf("<li>%s</li>",
							html.EscapeString(core.Stringify(v))))
					}
					acc = append(acc, "</ul>")
					return strings.Join(acc, "\n"), nil
				},
			},
		},
	}
}

// SeedSite writes a little example site so the demo has something to
// show right away.
func (s *Service) SeedSite(ctx context.Context, sid string) error {
	if err := s.store.MakeSite(ctx, sid); err != nil {
		return err
	}

	d := &storage.Document{
		Did: "home",
		Blocks: []*storage.Block{
			{
				Bid:  "b0",
				Type: "heading",
				Props: map[string]interface{}{
					"text": map[string]interface{}{
						"mode":       "dynamic",
						"expression": `"Hello, " & user`,
						"value":      "Hello",
					},
					"level": "1",
				},
			},
			{
				Bid:  "b1",
				Type: "paragraph",
				Props: map[string]interface{}{
					"text": "This page re-renders as the scope changes.",
				},
			},
			{
				Bid:  "b2",
				Type: "badge",
				Props: map[string]interface{}{
					"label": "Messages",
					"count": map[string]interface{}{
						"mode":       "dynamic",
						"expression": "$count(messages)",
						"value":      0,
					},
				},
			},
			{
				Bid:  "b3",
				Type: "list",
				Props: map[string]interface{}{
					"items": map[string]interface{}{
						"mode":       "dynamic",
						"expression": "messages",
						"value":      []interface{}{},
					},
					"itemTemplate": "$item",
				},
			},
		},
	}

	return s.store.WriteDocs(ctx, sid, []*storage.Document{d})
}
