package tools

import (
	"fmt"
	"io/ioutil"

	"github.com/fieldexpr/fieldexpr/core"
	"github.com/fieldexpr/fieldexpr/util"

	"gopkg.in/yaml.v2"
)

// ParseConfig reads a Config (without render functions, of course)
// from YAML.
//
// The YAML parser produces map[interface{}]interface{}, so everything
// is canonicalized into JSON-style maps on the way in.
func ParseConfig(bs []byte) (*core.Config, error) {
	var raw interface{}
	if err := yaml.Unmarshal(bs, &raw); err != nil {
		return nil, err
	}

	x, err := core.Canonicalize(raw)
	if err != nil {
		return nil, err
	}

	m, is := x.(map[string]interface{})
	if !is {
		return nil, fmt.Errorf("config is a %T, not a map", x)
	}

	cfg := &core.Config{
		Components: make(map[string]*core.Component, 8),
	}

	comps, _ := m["components"].(map[string]interface{})
	for name, v := range comps {
		cm, is := v.(map[string]interface{})
		if !is {
			// Defensive skip, same policy as WithExpressions.
			continue
		}
		c := &core.Component{}
		if doc, is := cm["doc"].(string); is {
			c.Doc = doc
		}
		if dp, is := cm["defaultProps"].(map[string]interface{}); is {
			c.DefaultProps = dp
		}
		if fs, is := cm["fields"].(map[string]interface{}); is {
			c.Fields = make(map[string]*core.Field, len(fs))
			for fname, fv := range fs {
				fm, is := fv.(map[string]interface{})
				if !is {
					continue
				}
				c.Fields[fname] = parseField(fm)
			}
		}
		cfg.Components[name] = c
	}

	return cfg, nil
}

func parseField(m map[string]interface{}) *core.Field {
	f := &core.Field{}
	if s, is := m["type"].(string); is {
		f.Type = s
	}
	if s, is := m["label"].(string); is {
		f.Label = s
	}
	if s, is := m["doc"].(string); is {
		f.Doc = s
	}
	if os, is := m["options"].([]interface{}); is {
		for _, o := range os {
			om, is := o.(map[string]interface{})
			if !is {
				continue
			}
			opt := core.Option{}
			if s, is := om["label"].(string); is {
				opt.Label = s
			}
			if s, is := om["value"].(string); is {
				opt.Value = s
			}
			f.Options = append(f.Options, opt)
		}
	}
	return f
}

// ParseDocument reads a page document (or any other JSON-like tree,
// wrapped values included) from YAML, canonicalized so it's
// indistinguishable from the same document parsed from JSON.
func ParseDocument(bs []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(bs, &raw); err != nil {
		return nil, err
	}
	return core.Canonicalize(raw)
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(filename string) (*core.Config, error) {
	util.Logf("tools.LoadConfig %s", filename)
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(bs)
}
