package prober

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/samvad-hq/placeholder-client/internal/domain"
	"github.com/samvad-hq/placeholder-client/pkg/checks"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
)

// Runner executes single checks against a placeholder client.
type Runner struct {
	mu     sync.Mutex
	client *placeholder.Client
}

// NewRunner wraps client. The runner temporarily swaps the client's bearer
// token for checks that carry their own, so the client should not be shared
// with concurrent callers while a check runs.
func NewRunner(client *placeholder.Client) *Runner {
	if client == nil {
		client = placeholder.New()
	}
	return &Runner{client: client}
}

// Run executes check and evaluates its expectations.
func (r *Runner) Run(ctx context.Context, check checks.Check) domain.CheckResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if check.Args.Token != "" {
		prev := r.client.Config()
		r.client.SetAuthToken(check.Args.Token)
		defer r.restoreAuth(prev)
	}

	start := time.Now()
	out := Dispatch(ctx, r.client, check)
	elapsed := time.Since(start)

	failures := Evaluate(check.Expect, out)
	status := domain.StatusPass
	if len(failures) > 0 {
		status = domain.StatusFail
	}

	return domain.CheckResult{
		CheckID:    check.ID,
		Operation:  check.Operation,
		Status:     status,
		StatusCode: out.StatusCode,
		URL:        out.URL,
		Error:      out.Error,
		Failures:   failures,
		Detail:     Diagnose(out),
		Elapsed:    elapsed,
		CheckedAt:  start.UTC(),
	}
}

func (r *Runner) restoreAuth(prev placeholder.Config) {
	if tok := prev.AuthToken(); tok != "" {
		r.client.SetAuthToken(tok)
		return
	}
	r.client.ClearAuth()
}

func filter(v *int) placeholder.OptionalID {
	if v == nil {
		return placeholder.AnyID
	}
	return placeholder.ID(*v)
}

func intArg(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Dispatch invokes the client method named by check.Operation and returns
// its outcome unevaluated. Unknown operations yield a failure outcome.
func Dispatch(ctx context.Context, c *placeholder.Client, check checks.Check) placeholder.Outcome {
	a := check.Args
	body := placeholder.Payload(a.Body)
	if body == nil {
		body = placeholder.Payload{}
	}

	switch check.Operation {
	case checks.OpGetPosts:
		return c.GetPosts(ctx, a.Params)
	case checks.OpGetPost:
		return c.GetPost(ctx, intArg(a.ID))
	case checks.OpGetComments:
		return c.GetComments(ctx, filter(a.PostID))
	case checks.OpGetUsers:
		return c.GetUsers(ctx)
	case checks.OpGetUser:
		return c.GetUser(ctx, intArg(a.ID))
	case checks.OpCreatePost:
		return c.CreatePost(ctx, body)
	case checks.OpCreateComment:
		return c.CreateComment(ctx, body)
	case checks.OpCreateUser:
		return c.CreateUser(ctx, body)
	case checks.OpUpdatePost:
		return c.UpdatePost(ctx, intArg(a.ID), body)
	case checks.OpUpdateUser:
		return c.UpdateUser(ctx, intArg(a.ID), body)
	case checks.OpPatchPost:
		return c.PatchPost(ctx, intArg(a.ID), body)
	case checks.OpDeletePost:
		return c.DeletePost(ctx, intArg(a.ID))
	case checks.OpDeleteUser:
		return c.DeleteUser(ctx, intArg(a.ID))
	case checks.OpGetPostsByUser:
		return c.GetPostsByUser(ctx, intArg(a.UserID))
	case checks.OpGetAlbums:
		return c.GetAlbums(ctx)
	case checks.OpGetPhotos:
		return c.GetPhotos(ctx, filter(a.AlbumID))
	case checks.OpGetTodos:
		return c.GetTodos(ctx, filter(a.UserID))
	case checks.OpCreatePostRaw:
		return c.Do(ctx, http.MethodPost, "/posts", nil, placeholder.RawBody(a.RawBody))
	default:
		return placeholder.FromError(&unknownOperationError{op: check.Operation})
	}
}

type unknownOperationError struct {
	op string
}

func (e *unknownOperationError) Error() string {
	return "unknown operation " + e.op
}
