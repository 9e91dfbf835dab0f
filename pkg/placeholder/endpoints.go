package placeholder

import (
	"context"
	"net/http"
	"strconv"
)

// Params are free-form query parameters, e.g. {"_page": "1", "_limit": "5"}.
type Params map[string]string

// Payload is an opaque JSON object sent as a request body.
type Payload map[string]any

// RawBody is sent verbatim, without JSON encoding.
type RawBody []byte

func postPath(id int) string { return "/posts/" + strconv.Itoa(id) }
func userPath(id int) string { return "/users/" + strconv.Itoa(id) }

// GetPosts lists posts; params become query parameters.
func (c *Client) GetPosts(ctx context.Context, params Params) Outcome {
	return c.Do(ctx, http.MethodGet, "/posts", params, nil)
}

// GetPost fetches one post.
func (c *Client) GetPost(ctx context.Context, id int) Outcome {
	return c.Do(ctx, http.MethodGet, postPath(id), nil, nil)
}

// GetComments lists comments, optionally filtered by post.
func (c *Client) GetComments(ctx context.Context, postID OptionalID) Outcome {
	return c.Do(ctx, http.MethodGet, "/comments", postID.query("postId"), nil)
}

// GetUsers lists users.
func (c *Client) GetUsers(ctx context.Context) Outcome {
	return c.Do(ctx, http.MethodGet, "/users", nil, nil)
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, id int) Outcome {
	return c.Do(ctx, http.MethodGet, userPath(id), nil, nil)
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, body Payload) Outcome {
	return c.Do(ctx, http.MethodPost, "/posts", nil, body)
}

// CreateComment creates a comment.
func (c *Client) CreateComment(ctx context.Context, body Payload) Outcome {
	return c.Do(ctx, http.MethodPost, "/comments", nil, body)
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, body Payload) Outcome {
	return c.Do(ctx, http.MethodPost, "/users", nil, body)
}

// UpdatePost replaces a post.
func (c *Client) UpdatePost(ctx context.Context, id int, body Payload) Outcome {
	return c.Do(ctx, http.MethodPut, postPath(id), nil, body)
}

// UpdateUser replaces a user.
func (c *Client) UpdateUser(ctx context.Context, id int, body Payload) Outcome {
	return c.Do(ctx, http.MethodPut, userPath(id), nil, body)
}

// PatchPost partially updates a post.
func (c *Client) PatchPost(ctx context.Context, id int, body Payload) Outcome {
	return c.Do(ctx, http.MethodPatch, postPath(id), nil, body)
}

// DeletePost deletes a post.
func (c *Client) DeletePost(ctx context.Context, id int) Outcome {
	return c.Do(ctx, http.MethodDelete, postPath(id), nil, nil)
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int) Outcome {
	return c.Do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

// GetPostsByUser lists posts authored by userID.
func (c *Client) GetPostsByUser(ctx context.Context, userID int) Outcome {
	return c.Do(ctx, http.MethodGet, "/posts", Params{"userId": strconv.Itoa(userID)}, nil)
}

// GetAlbums lists albums.
func (c *Client) GetAlbums(ctx context.Context) Outcome {
	return c.Do(ctx, http.MethodGet, "/albums", nil, nil)
}

// GetPhotos lists photos, optionally filtered by album.
func (c *Client) GetPhotos(ctx context.Context, albumID OptionalID) Outcome {
	return c.Do(ctx, http.MethodGet, "/photos", albumID.query("albumId"), nil)
}

// GetTodos lists todos, optionally filtered by user.
func (c *Client) GetTodos(ctx context.Context, userID OptionalID) Outcome {
	return c.Do(ctx, http.MethodGet, "/todos", userID.query("userId"), nil)
}
