// internal/testutil/feed.go
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Feed is an in-process package feed serving a service index, a search
// service and a flat archive container.
type Feed struct {
	Server *httptest.Server

	mu       sync.Mutex
	versions map[string][]string
	archives map[string][]byte

	downloads atomic.Int64
	searches  atomic.Int64
}

// NewFeed starts a Feed that is shut down when the test ends
func NewFeed(t testing.TB) *Feed {
	t.Helper()

	f := &Feed{
		versions: make(map[string][]string),
		archives: make(map[string][]byte),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", f.serveIndex)
	mux.HandleFunc("/query", f.serveSearch)
	mux.HandleFunc("/flat/", f.serveArchive)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// IndexURL returns the URL of the service index
func (f *Feed) IndexURL() string {
	return f.Server.URL + "/index.json"
}

// AddVersion lists version for id in search results (in call order) and
// serves archive for it. A nil archive is listed but not downloadable.
func (f *Feed) AddVersion(id, version string, archive []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.ToLower(id)
	f.versions[key] = append(f.versions[key], version)
	if archive != nil {
		f.archives[key+"/"+strings.ToLower(version)] = archive
	}
}

// Downloads returns how many archives were served
func (f *Feed) Downloads() int64 {
	return f.downloads.Load()
}

// Searches returns how many search queries were answered
func (f *Feed) Searches() int64 {
	return f.searches.Load()
}

func (f *Feed) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"version":"3.0.0","resources":[
		{"@id":"%[1]s/query","@type":"SearchQueryService"},
		{"@id":"%[1]s/flat/","@type":"PackageBaseAddress/3.0.0"}
	]}`, f.Server.URL)
}

func (f *Feed) serveSearch(w http.ResponseWriter, r *http.Request) {
	f.searches.Add(1)

	id := strings.TrimPrefix(r.URL.Query().Get("q"), "packageid:")

	f.mu.Lock()
	versions := f.versions[strings.ToLower(id)]
	f.mu.Unlock()

	type record struct {
		ID      string `json:"id"`
		Version string `json:"version"`
	}
	res := struct {
		Data []record `json:"data"`
	}{Data: []record{}}
	for _, v := range versions {
		res.Data = append(res.Data, record{ID: id, Version: v})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

func (f *Feed) serveArchive(w http.ResponseWriter, r *http.Request) {
	// /flat/<id>/<version>/<id>.<version>.nupkg
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/flat/"), "/")
	if len(parts) != 3 || parts[2] != parts[0]+"."+parts[1]+".nupkg" {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	data, ok := f.archives[parts[0]+"/"+parts[1]]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	f.downloads.Add(1)
	_, _ = w.Write(data)
}
