package tools

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/fieldexpr/fieldexpr/core"

	md "github.com/russross/blackfriday/v2"
)

// RenderConfigHTML writes a component-catalog fragment for the given
// Config.  Doc strings are treated as Markdown.
func RenderConfigHTML(cfg *core.Config, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	names := make([]string, 0, len(cfg.Components))
	for name := range cfg.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	f(`<div class="catalog">`)

	for _, name := range names {
		c := cfg.Components[name]
		if c == nil {
			continue
		}

		f(`<div class="component"><h2 id="%s">%s</h2>`, html.EscapeString(name), html.EscapeString(name))

		if c.Doc != "" {
			f(`<div class="componentDoc doc">%s</div>`, md.Run([]byte(c.Doc)))
		}

		if 0 < len(c.Fields) {
			fields := make([]string, 0, len(c.Fields))
			for fname := range c.Fields {
				fields = append(fields, fname)
			}
			sort.Strings(fields)

			f(`<table class="fields">`)
			f(`<tr><th>field</th><th>type</th><th>label</th><th>expressions</th></tr>`)
			for _, fname := range fields {
				field := c.Fields[fname]
				if field == nil {
					continue
				}
				exprs := "no"
				if core.IsPrimitiveType(field.Type) {
					exprs = "yes"
				}
				f(`<tr><td><code>%s</code></td><td><code>%s</code></td><td>%s</td><td>%s</td></tr>`,
					html.EscapeString(fname),
					html.EscapeString(field.Type),
					html.EscapeString(field.Label),
					exprs)
				if field.Doc != "" {
					f(`<tr><td></td><td colspan="3"><div class="fieldDoc doc">%s</div></td></tr>`,
						md.Run([]byte(field.Doc)))
				}
			}
			f(`</table>`)
		}

		if 0 < len(c.DefaultProps) {
			js, err := json.MarshalIndent(c.DefaultProps, "", "  ")
			if err != nil {
				return err
			}
			f(`<div class="defaultProps"><pre>%s</pre></div>`, html.EscapeString(string(js)))
		}

		f(`</div>`)
	}

	f(`</div>`)

	return nil
}

// RenderConfigPage writes a complete catalog page.
func RenderConfigPage(title string, cfg *core.Config, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/catalog.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html.EscapeString(title))

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html.EscapeString(title))

	if err := RenderConfigHTML(cfg, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}
