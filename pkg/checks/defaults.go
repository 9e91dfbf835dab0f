package checks

func intp(v int) *int { return &v }

// DefaultSuite covers every resource with the smoke checks the public API is
// expected to pass: happy paths, filters, boundary ids, invalid payloads,
// bearer tokens and a malformed JSON body.
func DefaultSuite() *Suite {
	validPost := map[string]any{
		"title":  "Test Post Title",
		"body":   "This is a test post body content",
		"userId": 1,
	}

	s, err := NewSuite([]Check{
		{ID: "api_availability", Operation: OpGetPosts, Expect: Expect{Status: []int{200}}},
		{ID: "get_single_post", Operation: OpGetPost, Args: Args{ID: intp(1)},
			Expect: Expect{Status: []int{200}, Fields: []string{"id", "title", "body"}, Equals: map[string]any{"id": 1}}},
		{ID: "create_post", Operation: OpCreatePost, Args: Args{Body: validPost},
			Expect: Expect{Status: []int{200, 201}, Fields: []string{"id"}, Equals: map[string]any{"title": "Test Post Title"}}},
		{ID: "posts_pagination", Operation: OpGetPosts, Args: Args{Params: map[string]string{"_page": "1", "_limit": "5"}},
			Expect: Expect{Status: []int{200}, MaxItems: 5}},
		{ID: "comments_by_post", Operation: OpGetComments, Args: Args{PostID: intp(1)},
			Expect: Expect{Status: []int{200}, Each: map[string]any{"postId": 1}}},
		{ID: "posts_by_user", Operation: OpGetPostsByUser, Args: Args{UserID: intp(1)},
			Expect: Expect{Status: []int{200}, Each: map[string]any{"userId": 1}}},
		{ID: "photos_by_album", Operation: OpGetPhotos, Args: Args{AlbumID: intp(1)},
			Expect: Expect{Status: []int{200}, Each: map[string]any{"albumId": 1}}},
		{ID: "todos_by_user", Operation: OpGetTodos, Args: Args{UserID: intp(1)},
			Expect: Expect{Status: []int{200}, Each: map[string]any{"userId": 1}}},
		{ID: "list_users", Operation: OpGetUsers, Expect: Expect{Status: []int{200}}},
		{ID: "get_single_user", Operation: OpGetUser, Args: Args{ID: intp(1)},
			Expect: Expect{Status: []int{200}, Fields: []string{"id", "name", "email"}}},
		{ID: "list_albums", Operation: OpGetAlbums, Expect: Expect{Status: []int{200}}},
		{ID: "post_id_min", Operation: OpGetPost, Args: Args{ID: intp(1)}, Expect: Expect{Status: []int{200}}},
		{ID: "post_id_max", Operation: OpGetPost, Args: Args{ID: intp(100)}, Expect: Expect{Status: []int{200}}},
		{ID: "post_id_zero", Operation: OpGetPost, Args: Args{ID: intp(0)}, Expect: Expect{Status: []int{400, 404}}},
		{ID: "post_id_negative", Operation: OpGetPost, Args: Args{ID: intp(-1)}, Expect: Expect{Status: []int{400, 404}}},
		{ID: "empty_string_parameter", Operation: OpGetPosts, Args: Args{Params: map[string]string{"userId": ""}},
			Expect: Expect{Status: []int{200, 400}}},
		{ID: "create_post_missing_fields", Operation: OpCreatePost, Args: Args{Body: map[string]any{"title": "Only Title"}},
			Expect: Expect{Status: []int{201, 400, 422}}},
		{ID: "create_post_invalid_types", Operation: OpCreatePost,
			Args:   Args{Body: map[string]any{"title": "", "body": nil, "userId": "invalid"}},
			Expect: Expect{Status: []int{201, 400, 422}}},
		{ID: "patch_post_title", Operation: OpPatchPost, Args: Args{ID: intp(1), Body: map[string]any{"title": "patched"}},
			Expect: Expect{Status: []int{200}, Equals: map[string]any{"title": "patched"}}},
		{ID: "update_nonexistent_post", Operation: OpUpdatePost, Args: Args{ID: intp(99999), Body: validPost},
			Expect: Expect{Status: []int{200, 404, 500}}},
		{ID: "delete_nonexistent_post", Operation: OpDeletePost, Args: Args{ID: intp(99999)},
			Expect: Expect{Status: []int{200, 404}}},
		{ID: "request_with_invalid_auth", Operation: OpGetPosts, Args: Args{Token: "invalid_token_12345"},
			Expect: Expect{Status: []int{200, 401, 403}}},
		{ID: "malformed_json", Operation: OpCreatePostRaw, Args: Args{RawBody: "invalid json string"},
			Expect: Expect{Status: []int{200, 201, 400, 415, 500}}},
	})
	if err != nil {
		panic("checks: invalid default suite: " + err.Error())
	}
	return s
}
