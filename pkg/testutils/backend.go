package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"folderpick/internal/config"
	"folderpick/pkg/types"
)

// Request is one call recorded by FakeBackend
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// FakeBackend is an in-memory stand-in for the node host's HTTP routes.
// Setters are safe to call while the server is handling requests.
type FakeBackend struct {
	Server *httptest.Server

	mu            sync.Mutex
	listings      map[string]*types.Listing
	indices       map[string]int
	lastPath      string
	pickerFiles   map[string][]types.PickerFile
	paletteFiles  map[string][]string
	paletteColors map[string][]string
	fonts         []string
	images        map[string][]byte
	failures      map[string]int
	explorerOK    bool
	requests      []Request
}

// NewFakeBackend starts a server on the default endpoints and closes it
// when the test ends
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		listings:      map[string]*types.Listing{},
		indices:       map[string]int{},
		pickerFiles:   map[string][]types.PickerFile{},
		paletteFiles:  map[string][]string{},
		paletteColors: map[string][]string{},
		images:        map[string][]byte{},
		failures:      map[string]int{},
		explorerOK:    true,
	}

	ep := config.New().Backend.Endpoints
	mux := http.NewServeMux()
	mux.HandleFunc(ep.List, fb.handleList)
	mux.HandleFunc(ep.ResolveIndex, fb.handleResolve)
	mux.HandleFunc(ep.LastPath, fb.handleLastPath)
	mux.HandleFunc(ep.OpenExplorer, fb.handleExplorer)
	mux.HandleFunc(ep.Thumbnail, fb.handleImage)
	mux.HandleFunc(ep.View, fb.handleImage)
	mux.HandleFunc(ep.ListDir, fb.handleListDir)
	mux.HandleFunc(ep.HexPicker+"/files", fb.handlePaletteFiles(ep.HexPicker))
	mux.HandleFunc(ep.HexPicker+"/colors", fb.handlePaletteColors)
	mux.HandleFunc(ep.RVBPicker+"/files", fb.handlePaletteFiles(ep.RVBPicker))
	mux.HandleFunc(ep.RVBPicker+"/colors", fb.handlePaletteColors)
	mux.HandleFunc(ep.Fonts, fb.handleFonts)

	fb.Server = httptest.NewServer(fb.record(mux))
	t.Cleanup(fb.Server.Close)
	return fb
}

// Config returns a test configuration pointing at the fake
func (fb *FakeBackend) Config() *config.Config {
	return config.NewTestConfig(fb.Server.URL)
}

// SetListing serves l for its CurrentDirectory
func (fb *FakeBackend) SetListing(l *types.Listing) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.listings[l.CurrentDirectory] = l
}

// SetIndex overrides the resolved index for path
func (fb *FakeBackend) SetIndex(path string, index int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.indices[path] = index
}

// SetLastPath sets the get_last_path answer
func (fb *FakeBackend) SetLastPath(path string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.lastPath = path
}

// SetPickerFiles serves files for the list_dir route of dir
func (fb *FakeBackend) SetPickerFiles(dir string, files []types.PickerFile) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.pickerFiles[dir] = files
}

// SetPalette serves files under prefix and colors per file
func (fb *FakeBackend) SetPalette(prefix string, files []string, colors map[string][]string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.paletteFiles[prefix] = files
	for f, c := range colors {
		fb.paletteColors[f] = c
	}
}

// SetFonts sets the font list
func (fb *FakeBackend) SetFonts(fonts []string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.fonts = fonts
}

// SetImage serves data for path on the thumbnail and view routes
func (fb *FakeBackend) SetImage(path string, data []byte) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.images[path] = data
}

// Fail makes the route answer with status until Recover is called
func (fb *FakeBackend) Fail(route string, status int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[route] = status
}

// Recover clears a failure set by Fail
func (fb *FakeBackend) Recover(route string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	delete(fb.failures, route)
}

// RefuseExplorer makes open_explorer answer {"ok": false}
func (fb *FakeBackend) RefuseExplorer() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.explorerOK = false
}

// Requests returns the recorded calls to route, oldest first
func (fb *FakeBackend) Requests(route string) []Request {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var out []Request
	for _, r := range fb.requests {
		if r.Path == route {
			out = append(out, r)
		}
	}
	return out
}

func (fb *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		fb.mu.Lock()
		fb.requests = append(fb.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   string(body),
		})
		status, failing := fb.failures[r.URL.Path]
		fb.mu.Unlock()

		if failing {
			writeJSON(w, status, map[string]string{"error": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (fb *FakeBackend) handleList(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("directory")
	fb.mu.Lock()
	l, ok := fb.listings[dir]
	fb.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Directory not found.", "current_directory": dir})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (fb *FakeBackend) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dir, path := q.Get("directory"), q.Get("path")

	fb.mu.Lock()
	defer fb.mu.Unlock()
	res := types.ResolvedIndex{Index: -1}
	if l, ok := fb.listings[dir]; ok {
		res.Count = len(l.Files)
		for i, f := range l.Files {
			if f.Path == path {
				res.Index = i
				break
			}
		}
	}
	if idx, ok := fb.indices[path]; ok {
		res.Index = idx
	}
	writeJSON(w, http.StatusOK, res)
}

func (fb *FakeBackend) handleLastPath(w http.ResponseWriter, _ *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"last_path": fb.lastPath})
}

func (fb *FakeBackend) handleExplorer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var body struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"ok": false, "error": "missing path"})
		return
	}
	fb.mu.Lock()
	ok := fb.explorerOK
	fb.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": false, "error": "no file manager"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (fb *FakeBackend) handleImage(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	data, ok := fb.images[r.URL.Query().Get("filepath")]
	fb.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write(data)
}

func (fb *FakeBackend) handleListDir(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	fb.mu.Lock()
	files := fb.pickerFiles[dir]
	fb.mu.Unlock()
	if files == nil {
		files = []types.PickerFile{}
	}
	writeJSON(w, http.StatusOK, types.PickerListing{Dir: dir, Count: len(files), Files: files})
}

func (fb *FakeBackend) handlePaletteFiles(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		fb.mu.Lock()
		files := fb.paletteFiles[prefix]
		fb.mu.Unlock()
		if files == nil {
			files = []string{}
		}
		writeJSON(w, http.StatusOK, map[string][]string{"files": files})
	}
}

func (fb *FakeBackend) handlePaletteColors(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	colors := fb.paletteColors[r.URL.Query().Get("file")]
	fb.mu.Unlock()
	if colors == nil {
		colors = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"colors": colors})
}

func (fb *FakeBackend) handleFonts(w http.ResponseWriter, _ *http.Request) {
	fb.mu.Lock()
	fonts := fb.fonts
	fb.mu.Unlock()
	if fonts == nil {
		fonts = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"fonts": fonts})
}
