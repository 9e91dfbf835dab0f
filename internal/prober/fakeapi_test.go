package prober

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
)

// fakeAPI serves a tiny JSONPlaceholder lookalike and records the last
// request it saw.
type fakeAPI struct {
	mu       sync.Mutex
	lastAuth string
	lastPath string
	lastBody string
	html     bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.lastAuth = r.Header.Get("Authorization")
	f.lastPath = r.URL.Path
	f.lastBody = string(body)
	html := f.html
	f.mu.Unlock()

	if html {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html><head><title>502 Bad Gateway</title></head><body></body></html>")
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodPost {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{}`)
			return
		}
		payload["id"] = 101
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(payload)
		return
	}

	if len(parts) == 2 {
		id, err := strconv.Atoi(parts[1])
		if err != nil || id < 1 || id > 100 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{}`)
			return
		}
		item := map[string]any{"id": id, "title": "t", "body": "b", "name": "n", "email": "e@example.com"}
		if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			var payload map[string]any
			_ = json.Unmarshal(body, &payload)
			for k, v := range payload {
				item[k] = v
			}
		}
		_ = json.NewEncoder(w).Encode(item)
		return
	}

	items := make([]map[string]any, 0, 3)
	for i := 1; i <= 3; i++ {
		item := map[string]any{"id": i}
		for k, v := range r.URL.Query() {
			if n, err := strconv.Atoi(v[0]); err == nil {
				item[k] = n
			}
		}
		items = append(items, item)
	}
	_ = json.NewEncoder(w).Encode(items)
}

func (f *fakeAPI) last() (auth, path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth, f.lastPath, f.lastBody
}

func newFakeClient(t *testing.T) (*placeholder.Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return placeholder.New(placeholder.WithBaseURL(srv.URL)), api
}
