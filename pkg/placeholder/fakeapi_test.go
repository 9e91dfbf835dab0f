package placeholder

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// recordedRequest is what fakeAPI saw for the most recent call.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// fakeAPI serves a small in-memory slice of the JSONPlaceholder data set.
type fakeAPI struct {
	srv  *httptest.Server
	mu   sync.Mutex
	last recordedRequest
	hits int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.srv = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.srv.Close)
	return api
}

func (a *fakeAPI) URL() string { return a.srv.URL }

func (a *fakeAPI) lastRequest() recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	a.mu.Lock()
	a.hits++
	a.last = recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	segs := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	resource := segs[0]

	if len(segs) == 2 {
		id, err := strconv.Atoi(segs[1])
		if err != nil || id < 1 || id > 100 {
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, fakeItem(resource, id))
		case http.MethodPut, http.MethodPatch:
			var in map[string]any
			if err := json.Unmarshal(body, &in); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad json"})
				return
			}
			in["id"] = id
			writeJSON(w, http.StatusOK, in)
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]any{})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, fakeList(resource, r.URL.Query()))
	case http.MethodPost:
		var in map[string]any
		if err := json.Unmarshal(body, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad json"})
			return
		}
		in["id"] = 101
		writeJSON(w, http.StatusCreated, in)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func fakeItem(resource string, id int) map[string]any {
	switch resource {
	case "posts":
		return map[string]any{"id": id, "userId": (id-1)/10 + 1, "title": "post " + strconv.Itoa(id), "body": "body " + strconv.Itoa(id)}
	case "users":
		return map[string]any{"id": id, "name": "user " + strconv.Itoa(id), "username": "u" + strconv.Itoa(id)}
	default:
		return map[string]any{"id": id}
	}
}

// fakeList returns three items per filter value; filter keys are echoed back
// into each item so callers can assert on them.
func fakeList(resource string, q map[string][]string) []map[string]any {
	out := make([]map[string]any, 0, 3)
	for i := 1; i <= 3; i++ {
		item := fakeItem(resource, i)
		for k, v := range q {
			if len(v) == 0 || strings.HasPrefix(k, "_") {
				continue
			}
			if n, err := strconv.Atoi(v[0]); err == nil {
				item[k] = n
			} else {
				item[k] = v[0]
			}
		}
		out = append(out, item)
	}
	if limit, ok := q["_limit"]; ok && len(limit) > 0 {
		if n, err := strconv.Atoi(limit[0]); err == nil && n < len(out) {
			out = out[:n]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
