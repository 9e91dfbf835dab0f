package placeholder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/samvad-hq/placeholder-client/pkg/httpclient"
)

// failingTransport stands in for a transport that cannot reach the server.
type failingTransport struct {
	err   error
	calls int
}

func (f *failingTransport) Do(context.Context, httpclient.Request) (httpclient.Response, error) {
	f.calls++
	return nil, f.err
}

// recordingLogger captures the messages the client emits.
type recordingLogger struct {
	msgs []string
}

func (r *recordingLogger) InfoObj(msg, _ string, _ interface{})  { r.msgs = append(r.msgs, "info:"+msg) }
func (r *recordingLogger) DebugObj(msg, _ string, _ interface{}) { r.msgs = append(r.msgs, "debug:"+msg) }
func (r *recordingLogger) WarnObj(msg, _ string, _ interface{})  { r.msgs = append(r.msgs, "warn:"+msg) }
func (r *recordingLogger) ErrorObj(msg, _ string, _ interface{}) { r.msgs = append(r.msgs, "error:"+msg) }

func TestNewDefaults(t *testing.T) {
	cfg := New().Config()
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Headers.Get("Content-Type") != "application/json" || cfg.Headers.Get("Accept") != "application/json" {
		t.Fatalf("unexpected default headers: %#v", cfg.Headers)
	}
	if cfg.HasAuth() {
		t.Fatalf("expected no Authorization header by default")
	}
}

func TestNewTrimsBaseURLAndKeepsTimeout(t *testing.T) {
	cfg := New(WithBaseURL("http://localhost:3000/"), WithTimeout(3*time.Second)).Config()
	if cfg.BaseURL != "http://localhost:3000" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
}

func TestEndpointsUseExpectedVerbPathAndQuery(t *testing.T) {
	api := newFakeAPI(t)
	client := New(WithBaseURL(api.URL()))
	ctx := context.Background()
	body := Payload{"title": "t", "body": "b", "userId": 1}

	cases := []struct {
		name   string
		call   func() Outcome
		method string
		path   string
		query  map[string]string
		status int
	}{
		{"GetPosts", func() Outcome { return client.GetPosts(ctx, Params{"_page": "1", "_limit": "5"}) }, http.MethodGet, "/posts", map[string]string{"_page": "1", "_limit": "5"}, 200},
		{"GetPost", func() Outcome { return client.GetPost(ctx, 1) }, http.MethodGet, "/posts/1", nil, 200},
		{"GetComments", func() Outcome { return client.GetComments(ctx, ID(1)) }, http.MethodGet, "/comments", map[string]string{"postId": "1"}, 200},
		{"GetUsers", func() Outcome { return client.GetUsers(ctx) }, http.MethodGet, "/users", nil, 200},
		{"GetUser", func() Outcome { return client.GetUser(ctx, 2) }, http.MethodGet, "/users/2", nil, 200},
		{"CreatePost", func() Outcome { return client.CreatePost(ctx, body) }, http.MethodPost, "/posts", nil, 201},
		{"CreateComment", func() Outcome { return client.CreateComment(ctx, Payload{"postId": 1}) }, http.MethodPost, "/comments", nil, 201},
		{"CreateUser", func() Outcome { return client.CreateUser(ctx, Payload{"name": "n"}) }, http.MethodPost, "/users", nil, 201},
		{"UpdatePost", func() Outcome { return client.UpdatePost(ctx, 1, body) }, http.MethodPut, "/posts/1", nil, 200},
		{"UpdateUser", func() Outcome { return client.UpdateUser(ctx, 1, Payload{"name": "n"}) }, http.MethodPut, "/users/1", nil, 200},
		{"PatchPost", func() Outcome { return client.PatchPost(ctx, 1, Payload{"title": "p"}) }, http.MethodPatch, "/posts/1", nil, 200},
		{"DeletePost", func() Outcome { return client.DeletePost(ctx, 1) }, http.MethodDelete, "/posts/1", nil, 200},
		{"DeleteUser", func() Outcome { return client.DeleteUser(ctx, 1) }, http.MethodDelete, "/users/1", nil, 200},
		{"GetPostsByUser", func() Outcome { return client.GetPostsByUser(ctx, 1) }, http.MethodGet, "/posts", map[string]string{"userId": "1"}, 200},
		{"GetAlbums", func() Outcome { return client.GetAlbums(ctx) }, http.MethodGet, "/albums", nil, 200},
		{"GetPhotos", func() Outcome { return client.GetPhotos(ctx, ID(4)) }, http.MethodGet, "/photos", map[string]string{"albumId": "4"}, 200},
		{"GetTodos", func() Outcome { return client.GetTodos(ctx, ID(2)) }, http.MethodGet, "/todos", map[string]string{"userId": "2"}, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.call()
			if out.StatusCode != tc.status {
				t.Fatalf("StatusCode = %d, want %d (error %q)", out.StatusCode, tc.status, out.Error)
			}
			if out.Error != "" || !out.OK {
				t.Fatalf("unexpected outcome: %#v", out)
			}
			req := api.lastRequest()
			if req.Method != tc.method || req.Path != tc.path {
				t.Fatalf("request = %s %s, want %s %s", req.Method, req.Path, tc.method, tc.path)
			}
			if len(req.Query) != len(tc.query) {
				t.Fatalf("query = %v, want %v", req.Query, tc.query)
			}
			for k, v := range tc.query {
				if got := req.Query[k]; len(got) != 1 || got[0] != v {
					t.Fatalf("query %s = %v, want %s", k, got, v)
				}
			}
			if req.Header.Get("Accept") != "application/json" {
				t.Fatalf("Accept header missing: %#v", req.Header)
			}
		})
	}
}

func TestOptionalFiltersDistinguishUnsetFromZero(t *testing.T) {
	api := newFakeAPI(t)
	client := New(WithBaseURL(api.URL()))
	ctx := context.Background()

	client.GetComments(ctx, AnyID)
	if q := api.lastRequest().Query; len(q) != 0 {
		t.Fatalf("unset filter should send no query, got %v", q)
	}

	client.GetTodos(ctx, ID(0))
	if got := api.lastRequest().Query["userId"]; len(got) != 1 || got[0] != "0" {
		t.Fatalf("ID(0) should send userId=0, got %v", got)
	}

	client.GetPhotos(ctx, OptionalID{})
	if q := api.lastRequest().Query; len(q) != 0 {
		t.Fatalf("zero OptionalID should send no query, got %v", q)
	}
}

func TestGetCommentsFilteredByPost(t *testing.T) {
	api := newFakeAPI(t)
	out := New(WithBaseURL(api.URL())).GetComments(context.Background(), ID(1))
	if out.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d", out.StatusCode)
	}
	list := out.List()
	if len(list) == 0 {
		t.Fatalf("expected comments")
	}
	for _, item := range list {
		c, ok := item.(map[string]any)
		if !ok || c["postId"] != float64(1) {
			t.Fatalf("comment not filtered by post: %#v", item)
		}
	}
}

func TestGetPostsPagination(t *testing.T) {
	api := newFakeAPI(t)
	out := New(WithBaseURL(api.URL())).GetPosts(context.Background(), Params{"_page": "1", "_limit": "2"})
	if n := len(out.List()); n > 2 {
		t.Fatalf("expected at most 2 posts, got %d", n)
	}
}

func TestGetPostIsIdempotent(t *testing.T) {
	api := newFakeAPI(t)
	client := New(WithBaseURL(api.URL()))

	first := client.GetPost(context.Background(), 1)
	second := client.GetPost(context.Background(), 1)
	if first.StatusCode != second.StatusCode || !reflect.DeepEqual(first.Data, second.Data) {
		t.Fatalf("outcomes differ: %#v vs %#v", first, second)
	}
	obj := first.Object()
	if obj["id"] != float64(1) {
		t.Fatalf("unexpected id: %#v", obj)
	}
	if _, ok := obj["title"]; !ok {
		t.Fatalf("title missing: %#v", obj)
	}
	if _, ok := obj["body"]; !ok {
		t.Fatalf("body missing: %#v", obj)
	}
}

func TestBoundaryIDsReturnOutcomes(t *testing.T) {
	api := newFakeAPI(t)
	client := New(WithBaseURL(api.URL()))

	for _, id := range []int{0, -1, 99999} {
		out := client.GetPost(context.Background(), id)
		if out.StatusCode != http.StatusNotFound || out.OK {
			t.Fatalf("id %d: unexpected outcome %#v", id, out)
		}
		if out.Error != "" {
			t.Fatalf("id %d: HTTP failure must not set error, got %q", id, out.Error)
		}
	}
	if got := api.lastRequest().Path; got != "/posts/99999" {
		t.Fatalf("path = %s", got)
	}
}

func TestCreatePostEchoesPayload(t *testing.T) {
	api := newFakeAPI(t)
	out := New(WithBaseURL(api.URL())).CreatePost(context.Background(), Payload{
		"title":  "Test Post Title",
		"body":   "This is a test post body content",
		"userId": 1,
	})
	if out.StatusCode != http.StatusCreated {
		t.Fatalf("StatusCode = %d", out.StatusCode)
	}
	var post Post
	if err := out.Decode(&post); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if post.Title != "Test Post Title" || post.ID == 0 {
		t.Fatalf("unexpected post: %#v", post)
	}
}

func TestDoSendsRawBodyVerbatim(t *testing.T) {
	api := newFakeAPI(t)
	out := New(WithBaseURL(api.URL())).Do(context.Background(), http.MethodPost, "/posts", nil, RawBody("invalid json string"))
	if out.StatusCode != http.StatusBadRequest || out.OK {
		t.Fatalf("unexpected outcome: %#v", out)
	}
	if got := string(api.lastRequest().Body); got != "invalid json string" {
		t.Fatalf("body = %q", got)
	}
}

func TestAuthTokenSetAndClear(t *testing.T) {
	api := newFakeAPI(t)
	client := New(WithBaseURL(api.URL()))
	before := client.Config()

	cfg := client.SetAuthToken("test_token_12345")
	if got := cfg.Headers.Get("Authorization"); got != "Bearer test_token_12345" {
		t.Fatalf("Authorization = %q", got)
	}
	if cfg.AuthToken() != "test_token_12345" {
		t.Fatalf("AuthToken = %q", cfg.AuthToken())
	}
	client.GetPosts(context.Background(), nil)
	if got := api.lastRequest().Header.Get("Authorization"); got != "Bearer test_token_12345" {
		t.Fatalf("request Authorization = %q", got)
	}

	after := client.ClearAuth()
	if !reflect.DeepEqual(before.Headers, after.Headers) {
		t.Fatalf("headers not restored: before %#v after %#v", before.Headers, after.Headers)
	}
	client.GetPosts(context.Background(), nil)
	if got := api.lastRequest().Header.Get("Authorization"); got != "" {
		t.Fatalf("Authorization still sent: %q", got)
	}

	// clearing twice is a no-op
	if again := client.ClearAuth(); !reflect.DeepEqual(after.Headers, again.Headers) {
		t.Fatalf("second ClearAuth changed headers: %#v", again.Headers)
	}
}

func TestConfigCopiesAreIsolated(t *testing.T) {
	client := New()
	cfg := client.Config()
	cfg.Headers.Set("Authorization", "Bearer leaked")
	if client.Config().HasAuth() {
		t.Fatalf("mutating a returned Config must not affect the client")
	}

	base := DefaultConfig()
	withAuth := base.WithAuthToken("x")
	if base.HasAuth() {
		t.Fatalf("WithAuthToken mutated its receiver")
	}
	if withAuth.WithoutAuth().HasAuth() {
		t.Fatalf("WithoutAuth left the header in place")
	}
}

func TestTransportFailureOnGetPosts(t *testing.T) {
	transport := &failingTransport{err: errors.New("Connection refused")}
	log := &recordingLogger{}
	client := New(WithTransport(transport), WithLogger(log))

	out := client.GetPosts(context.Background(), nil)
	if transport.calls != 1 {
		t.Fatalf("expected one transport call, got %d", transport.calls)
	}
	if out.StatusCode != 500 || out.OK || out.Data != nil {
		t.Fatalf("unexpected outcome: %#v", out)
	}
	if out.Error != "Connection refused" {
		t.Fatalf("Error = %q", out.Error)
	}
	if len(out.Headers) != 0 || out.URL != "" {
		t.Fatalf("failure outcome must have empty headers and url: %#v", out)
	}
	if len(log.msgs) != 1 || log.msgs[0] != "error:placeholder request failed" {
		t.Fatalf("unexpected log messages: %v", log.msgs)
	}
}

func TestUnreachableServerIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := New(WithBaseURL(url), WithTimeout(time.Second)).GetPost(context.Background(), 1)
	if out.StatusCode != TransportFailureStatus || out.OK || out.Error == "" {
		t.Fatalf("unexpected outcome: %#v", out)
	}
}

func TestTimeoutIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out := New(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond)).GetPosts(context.Background(), nil)
	if out.StatusCode != TransportFailureStatus || out.Error == "" {
		t.Fatalf("expected timeout failure, got %#v", out)
	}
}

func TestLogLevelFollowsStatusClass(t *testing.T) {
	api := newFakeAPI(t)
	log := &recordingLogger{}
	client := New(WithBaseURL(api.URL()), WithLogger(log))

	client.GetPost(context.Background(), 1)
	client.GetPost(context.Background(), 0)
	want := []string{"debug:placeholder request completed", "warn:placeholder request completed"}
	if !reflect.DeepEqual(log.msgs, want) {
		t.Fatalf("log messages = %v, want %v", log.msgs, want)
	}
}
