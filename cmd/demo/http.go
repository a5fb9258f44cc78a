package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"regexp"

	"github.com/fieldexpr/fieldexpr/cmd/demo/storage"
	"github.com/fieldexpr/fieldexpr/tools"
)

var docPath = regexp.MustCompile("^/sites/([-a-zA-Z0-9_]+)/docs/([-a-zA-Z0-9_]+)(/render)?$")

// HTTPService registers the demo's HTTP API:
//
//	GET  /sites/SID/docs/DID          the stored document (wrapped props)
//	PUT  /sites/SID/docs/DID          replace the stored document
//	GET  /sites/SID/docs/DID/render   the document rendered as HTML
//	GET  /scope                       the current ambient scope
//	POST /scope                       merge a JSON object into the scope
//	GET  /catalog                     the component catalog page
func (s *Service) HTTPService(ctx context.Context) {

	protest := func(w http.ResponseWriter, status int, format string, args ...interface{}) {
		w.WriteHeader(status)
		fmt.Fprintf(w, format+"\n", args...)
	}

	http.HandleFunc("/sites/", func(w http.ResponseWriter, r *http.Request) {
		ss := docPath.FindStringSubmatch(r.URL.Path)
		if ss == nil {
			protest(w, http.StatusNotFound, "no document in %s", r.URL.Path)
			return
		}
		sid, did, render := ss[1], ss[2], ss[3] != ""

		switch {
		case r.Method == "GET" && render:
			h, err := s.RenderDocument(r.Context(), sid, did)
			if err == storage.NotFound {
				protest(w, http.StatusNotFound, "%s/%s not found", sid, did)
				return
			}
			if err != nil {
				protest(w, http.StatusInternalServerError, "error: %v", err)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintln(w, h)

		case r.Method == "GET":
			d, err := s.store.GetDoc(r.Context(), sid, did)
			if err == storage.NotFound {
				protest(w, http.StatusNotFound, "%s/%s not found", sid, did)
				return
			}
			if err != nil {
				protest(w, http.StatusInternalServerError, "error: %v", err)
				return
			}
			js, err := json.MarshalIndent(&d, "", "  ")
			if err != nil {
				protest(w, http.StatusInternalServerError, "error: %v", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(js)

		case r.Method == "PUT":
			bs, err := ioutil.ReadAll(r.Body)
			if err != nil {
				protest(w, http.StatusBadRequest, "error: %v", err)
				return
			}
			var d storage.Document
			if err = json.Unmarshal(bs, &d); err != nil {
				protest(w, http.StatusBadRequest, "can't parse: %v", err)
				return
			}
			d.Did = did
			if err = s.store.WriteDocs(r.Context(), sid, []*storage.Document{&d}); err != nil {
				protest(w, http.StatusInternalServerError, "error: %v", err)
				return
			}
			s.Broadcast(map[string]interface{}{
				"op":  "doc",
				"sid": sid,
				"did": did,
			})
			fmt.Fprintln(w, "ok")

		default:
			protest(w, http.StatusMethodNotAllowed, "unsupported method %s", r.Method)
		}
	})

	http.HandleFunc("/scope", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			scope := s.provider.Scope()
			js, err := json.MarshalIndent(&scope, "", "  ")
			if err != nil {
				protest(w, http.StatusInternalServerError, "error: %v", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(js)
		case "POST":
			bs, err := ioutil.ReadAll(r.Body)
			if err != nil {
				protest(w, http.StatusBadRequest, "error: %v", err)
				return
			}
			var vars map[string]interface{}
			if err = json.Unmarshal(bs, &vars); err != nil {
				protest(w, http.StatusBadRequest, "can't parse: %v", err)
				return
			}
			s.MergeScope(vars)
			fmt.Fprintln(w, "ok")
		default:
			protest(w, http.StatusMethodNotAllowed, "unsupported method %s", r.Method)
		}
	})

	http.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tools.RenderConfigPage("Components", s.config, w, nil); err != nil {
			s.Logf("catalog render error %v", err)
		}
	})
}
