package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, app *fiber.App, token, text string) uint {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{"text": text})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var post struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &post)
	require.NotZero(t, post.ID)
	return post.ID
}

func TestCreatePost(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Alice", "a@x.com")

	t.Run("Valid post snapshots the author", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{"text": "hello"})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var post map[string]any
		decodeBody(t, resp, &post)
		assert.Equal(t, "hello", post["text"])
		assert.Equal(t, "Alice", post["name"])
		assert.Contains(t, post["avatar"], "gravatar.com")
		assert.Empty(t, post["likes"])
		assert.Empty(t, post["comments"])
	})

	t.Run("Empty text rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{"text": "   "})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Requires auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", "", map[string]string{"text": "hello"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListPosts(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Alice", "a@x.com")

	createPost(t, app, token, "first")
	createPost(t, app, token, "second")

	resp := doJSON(t, app, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []struct {
		Text string `json:"text"`
	}
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Text)
	assert.Equal(t, "first", posts[1].Text)
}

func TestDeletePost(t *testing.T) {
	_, app := setupTestServer(t)
	alice := registerUser(t, app, "Alice", "a@x.com")
	bob := registerUser(t, app, "Bob", "b@x.com")

	createPost(t, app, alice, "hello")

	t.Run("Non-author cannot delete", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/1", bob, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Author deletes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/1", alice, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/posts/1", alice, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Unknown post", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/999", alice, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestLikeUnlike(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Alice", "a@x.com")
	createPost(t, app, token, "hello")

	t.Run("Like", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/posts/like/1", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var likes []struct {
			User uint `json:"user"`
		}
		decodeBody(t, resp, &likes)
		require.Len(t, likes, 1)
		assert.Equal(t, uint(1), likes[0].User)
	})

	t.Run("Second like is rejected and set is unchanged", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/posts/like/1", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/posts/1", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var post struct {
			Likes []any `json:"likes"`
		}
		decodeBody(t, resp, &post)
		assert.Len(t, post.Likes, 1)
	})

	t.Run("Unlike empties the set", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/posts/unlike/1", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var likes []any
		decodeBody(t, resp, &likes)
		assert.Empty(t, likes)
	})

	t.Run("Unlike without a like is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/posts/unlike/1", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Like unknown post", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/posts/like/999", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestComments(t *testing.T) {
	_, app := setupTestServer(t)
	alice := registerUser(t, app, "Alice", "a@x.com")
	bob := registerUser(t, app, "Bob", "b@x.com")
	createPost(t, app, alice, "hello")

	t.Run("Comments are newest-first", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/comment/1", alice, map[string]string{"text": "first"})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodPost, "/api/posts/comment/1", bob, map[string]string{"text": "second"})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var comments []struct {
			Text string `json:"text"`
			Name string `json:"name"`
		}
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 2)
		assert.Equal(t, "second", comments[0].Text)
		assert.Equal(t, "Bob", comments[0].Name)
		assert.Equal(t, "first", comments[1].Text)
	})

	t.Run("Empty comment rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/comment/1", alice, map[string]string{"text": ""})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Non-author cannot remove and list is unchanged", func(t *testing.T) {
		// Comment 1 belongs to Alice; Bob may not remove it.
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/comment/1/1", bob, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/posts/1", alice, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var post struct {
			Comments []any `json:"comments"`
		}
		decodeBody(t, resp, &post)
		assert.Len(t, post.Comments, 2)
	})

	t.Run("Author removes own comment", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/comment/1/1", alice, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var comments []struct {
			Text string `json:"text"`
		}
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "second", comments[0].Text)
	})

	t.Run("Unknown comment id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/comment/1/999", alice, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Unknown post id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/comment/999", alice, map[string]string{"text": "hi"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
