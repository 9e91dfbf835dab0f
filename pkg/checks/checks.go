package checks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Package checks contains declarative smoke check definitions (YAML/JSON).

// Supported operations, named after the client methods they invoke.
const (
	OpGetPosts       = "get_posts"
	OpGetPost        = "get_post"
	OpGetComments    = "get_comments"
	OpGetUsers       = "get_users"
	OpGetUser        = "get_user"
	OpCreatePost     = "create_post"
	OpCreateComment  = "create_comment"
	OpCreateUser     = "create_user"
	OpUpdatePost     = "update_post"
	OpUpdateUser     = "update_user"
	OpPatchPost      = "patch_post"
	OpDeletePost     = "delete_post"
	OpDeleteUser     = "delete_user"
	OpGetPostsByUser = "get_posts_by_user"
	OpGetAlbums      = "get_albums"
	OpGetPhotos      = "get_photos"
	OpGetTodos       = "get_todos"
	// OpCreatePostRaw posts Args.RawBody to /posts without JSON encoding.
	OpCreatePostRaw = "create_post_raw"
)

// operations maps each operation to the argument it cannot run without.
var operations = map[string]string{
	OpGetPosts:       "",
	OpGetPost:        "id",
	OpGetComments:    "",
	OpGetUsers:       "",
	OpGetUser:        "id",
	OpCreatePost:     "",
	OpCreateComment:  "",
	OpCreateUser:     "",
	OpUpdatePost:     "id",
	OpUpdateUser:     "id",
	OpPatchPost:      "id",
	OpDeletePost:     "id",
	OpDeleteUser:     "id",
	OpGetPostsByUser: "user_id",
	OpGetAlbums:      "",
	OpGetPhotos:      "",
	OpGetTodos:       "",
	OpCreatePostRaw:  "raw_body",
}

// KnownOperation reports whether op is a supported operation name.
func KnownOperation(op string) bool {
	_, ok := operations[op]
	return ok
}

// Operations returns the supported operation names, sorted.
func Operations() []string {
	ops := make([]string, 0, len(operations))
	for op := range operations {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Check is one declarative call plus the expectations its outcome must meet.
type Check struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Operation string `json:"operation" yaml:"operation"`
	Args      Args   `json:"args" yaml:"args"`
	Expect    Expect `json:"expect" yaml:"expect"`
}

// Args are the inputs passed to the client method.
type Args struct {
	ID      *int              `json:"id" yaml:"id"`
	PostID  *int              `json:"post_id" yaml:"post_id"`
	AlbumID *int              `json:"album_id" yaml:"album_id"`
	UserID  *int              `json:"user_id" yaml:"user_id"`
	Params  map[string]string `json:"params" yaml:"params"`
	Body    map[string]any    `json:"body" yaml:"body"`
	RawBody string            `json:"raw_body" yaml:"raw_body"`
	// Token, when set, is applied for the duration of the check only.
	Token string `json:"token" yaml:"token"`
}

// Expect describes what a passing outcome looks like.
type Expect struct {
	// Status lists acceptable status codes; empty means any 2xx.
	Status []int `json:"status" yaml:"status"`
	// Fields must be present on an object response.
	Fields []string `json:"fields" yaml:"fields"`
	// Equals are key/value pairs an object response must carry.
	Equals map[string]any `json:"equals" yaml:"equals"`
	// Each are key/value pairs every element of an array response must carry.
	Each map[string]any `json:"each" yaml:"each"`
	// MaxItems caps the length of an array response; 0 disables the cap.
	MaxItems int `json:"max_items" yaml:"max_items"`
}

type suiteFile struct {
	Checks []Check `json:"checks" yaml:"checks"`
}

// Suite is an ordered, id-indexed set of checks.
type Suite struct {
	mu     sync.RWMutex
	checks []Check
	idx    map[string]Check
}

// NewSuite sanitizes and validates checks into a Suite.
func NewSuite(checks []Check) (*Suite, error) {
	if len(checks) == 0 {
		return nil, errors.New("suite contains no checks")
	}

	s := &Suite{
		checks: make([]Check, len(checks)),
		idx:    make(map[string]Check, len(checks)),
	}
	for i := range checks {
		c := sanitizeCheck(checks[i])
		if err := validateCheck(c); err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		if _, exists := s.idx[c.ID]; exists {
			return nil, fmt.Errorf("duplicate check id %q", c.ID)
		}
		s.checks[i] = c
		s.idx[c.ID] = c
	}
	return s, nil
}

// LoadSuite loads checks from a YAML/JSON file.
func LoadSuite(path string) (*Suite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("checks file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checks file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read checks file: %w", err)
	}

	parsed, err := parseSuite(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewSuite(parsed.Checks)
}

// All returns a copy of the checks in declaration order.
func (s *Suite) All() []Check {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Check, len(s.checks))
	copy(out, s.checks)
	return out
}

// ByID returns the check with the given id.
func (s *Suite) ByID(id string) (Check, bool) {
	if s == nil {
		return Check{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Check{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.idx[id]
	return c, ok
}

// Len returns the number of checks.
func (s *Suite) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.checks)
}

type unmarshalFn func([]byte, any) error

func parseSuite(data []byte, ext string) (suiteFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if parsed, err := unmarshalSuite(d.name, data, d.fn); err == nil {
			return parsed, nil
		}
	}

	return suiteFile{}, errors.New("checks file format not recognized (expected YAML or JSON)")
}

func unmarshalSuite(name string, data []byte, fn unmarshalFn) (suiteFile, error) {
	var parsed suiteFile
	if err := fn(data, &parsed); err != nil {
		return suiteFile{}, fmt.Errorf("decode %s checks: %w", name, err)
	}
	return parsed, nil
}

// Validate reports whether c names a known operation and carries the
// arguments that operation needs.
func (c Check) Validate() error {
	return validateCheck(sanitizeCheck(c))
}

func sanitizeCheck(c Check) Check {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.Operation = strings.ToLower(strings.TrimSpace(c.Operation))
	c.Args.Token = strings.TrimSpace(c.Args.Token)
	if c.Name == "" {
		c.Name = c.ID
	}
	return c
}

func validateCheck(c Check) error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.Operation == "" {
		return fmt.Errorf("operation is required for check %q", c.ID)
	}
	required, ok := operations[c.Operation]
	if !ok {
		return fmt.Errorf("unknown operation %q for check %q", c.Operation, c.ID)
	}
	switch required {
	case "id":
		if c.Args.ID == nil {
			return fmt.Errorf("args.id is required for check %q", c.ID)
		}
	case "user_id":
		if c.Args.UserID == nil {
			return fmt.Errorf("args.user_id is required for check %q", c.ID)
		}
	case "raw_body":
		if c.Args.RawBody == "" {
			return fmt.Errorf("args.raw_body is required for check %q", c.ID)
		}
	}
	if c.Expect.MaxItems < 0 {
		return fmt.Errorf("expect.max_items must not be negative for check %q", c.ID)
	}
	return nil
}
