package core

import (
	"errors"
	"sync"
)

const (
	// ItemVar is the reserved scope variable for the current item
	// when evaluating expressions inside an array context.
	ItemVar = "$item"

	// IndexVar is the reserved scope variable for the current
	// index when evaluating expressions inside an array context.
	IndexVar = "$index"
)

// Scope is a map from variable names to their values.  An expression
// is always evaluated against exactly one Scope.
type Scope map[string]interface{}

func NewScope() Scope {
	return make(Scope, 8)
}

// Extend adds the property; modifies and returns the Scope.
//
// The Scope is modified.
func (s Scope) Extend(p string, v interface{}) Scope {
	s[p] = v
	return s
}

// Extendm adds the properties; modifies and returns the Scope.
//
// The Scope is modified.
func (s Scope) Extendm(pairs ...interface{}) (Scope, error) {
	for i := 0; i < len(pairs); i += 2 {
		x := pairs[i]
		p, is := x.(string)
		if !is {
			return nil, errors.New("Scope.Extendm given a non-string key")
		}
		if len(pairs) <= i+1 {
			return nil, errors.New("odd args to Scope.Extendm")
		}
		s[p] = pairs[i+1]
	}
	return s, nil
}

// Copy makes a shallow copy of the Scope.
func (s Scope) Copy() Scope {
	acc := make(Scope, len(s))
	for k, v := range s {
		acc[k] = v
	}
	return acc
}

// WithItem returns a copy of the Scope extended with ItemVar and
// IndexVar bindings for an array context.
func (s Scope) WithItem(item interface{}, index int) Scope {
	acc := s.Copy()
	acc[ItemVar] = item
	acc[IndexVar] = index
	return acc
}

// ScopeProvider supplies the ambient Scope available to every field
// editor beneath it.
//
// Providers nest: a child provider shadows its parent entirely
// (nearest provider wins; there are no merge semantics).  The zero
// provider yields an empty Scope.
type ScopeProvider struct {
	sync.RWMutex

	parent *ScopeProvider
	scope  Scope
}

// NewScopeProvider makes a root provider for the given Scope (which
// may be nil).
func NewScopeProvider(s Scope) *ScopeProvider {
	return &ScopeProvider{
		scope: s,
	}
}

// With returns a child provider whose Scope shadows this provider's.
func (p *ScopeProvider) With(s Scope) *ScopeProvider {
	return &ScopeProvider{
		parent: p,
		scope:  s,
	}
}

// WithItem returns a child provider for an array context: the current
// Scope extended with ItemVar and IndexVar.
func (p *ScopeProvider) WithItem(item interface{}, index int) *ScopeProvider {
	return p.With(p.Scope().WithItem(item, index))
}

// Set replaces this provider's Scope.
//
// Editors only read Scopes, but an application can feed new ambient
// data (say from a message broker) through its root provider.
func (p *ScopeProvider) Set(s Scope) {
	p.Lock()
	p.scope = s
	p.Unlock()
}

// Scope returns the nearest non-nil Scope in the provider chain.
//
// The returned Scope should be treated as read-only.
func (p *ScopeProvider) Scope() Scope {
	for q := p; q != nil; q = q.parent {
		q.RLock()
		s := q.scope
		q.RUnlock()
		if s != nil {
			return s
		}
	}
	return NewScope()
}
