package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Fetcher pulls JSON over HTTP into the ambient scope.  The cookie
// jar persists across fetches, so session-authenticated endpoints
// work after the first request.
type Fetcher struct {
	Client *http.Client
}

func NewFetcher() (*Fetcher, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		Client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch GETs the URL and parses the body as JSON.
func (f *Fetcher) Fetch(ctx context.Context, url string) (interface{}, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	res, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, res.Status)
	}

	bs, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var x interface{}
	if err = json.Unmarshal(bs, &x); err != nil {
		return nil, err
	}
	return x, nil
}

// FetchScope fetches the URL every interval and stores the result
// under the given scope variable.  Blocks until the context is done.
func (s *Service) FetchScope(ctx context.Context, name, url string, interval time.Duration) error {
	f, err := NewFetcher()
	if err != nil {
		return err
	}

	fetch := func() {
		x, err := f.Fetch(ctx, url)
		if err != nil {
			s.Logf("FetchScope %s error %v", url, err)
			return
		}
		s.SetScopeVar(name, x)
	}

	fetch()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fetch()
		}
	}
}
