package storage

import (
	"context"
	"sync"
)

// Mem is an in-memory Storage for tests and demos.
type Mem struct {
	sync.Mutex

	sites map[string]map[string]*Document
}

func NewMem() *Mem {
	return &Mem{
		sites: make(map[string]map[string]*Document, 4),
	}
}

func (s *Mem) MakeSite(ctx context.Context, sid string) error {
	s.Lock()
	defer s.Unlock()
	if _, have := s.sites[sid]; !have {
		s.sites[sid] = make(map[string]*Document, 8)
	}
	return nil
}

func (s *Mem) RemSite(ctx context.Context, sid string) error {
	s.Lock()
	defer s.Unlock()
	if _, have := s.sites[sid]; !have {
		return NotFound
	}
	delete(s.sites, sid)
	return nil
}

func (s *Mem) GetSite(ctx context.Context, sid string) ([]*Document, error) {
	s.Lock()
	defer s.Unlock()
	site, have := s.sites[sid]
	if !have {
		return nil, nil
	}
	acc := make([]*Document, 0, len(site))
	for _, d := range site {
		acc = append(acc, d.Copy())
	}
	return acc, nil
}

func (s *Mem) GetDoc(ctx context.Context, sid string, did string) (*Document, error) {
	s.Lock()
	defer s.Unlock()
	site, have := s.sites[sid]
	if !have {
		return nil, NotFound
	}
	d, have := site[did]
	if !have {
		return nil, NotFound
	}
	return d.Copy(), nil
}

func (s *Mem) WriteDocs(ctx context.Context, sid string, ds []*Document) error {
	s.Lock()
	defer s.Unlock()
	site, have := s.sites[sid]
	if !have {
		site = make(map[string]*Document, 8)
		s.sites[sid] = site
	}
	for _, d := range ds {
		if d.Deleted {
			delete(site, d.Did)
		} else {
			site[d.Did] = d.Copy()
		}
	}
	return nil
}
