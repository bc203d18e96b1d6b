package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	_, app := setupTestServer(t)
	author := registerUser(t, app, "Author", "author@example.com")
	commenter := registerUser(t, app, "Commenter", "commenter@example.com")
	postID := createPost(t, app, author, "discuss")

	target := fmt.Sprintf("/api/post/comment/%d", postID)

	resp, err := app.Test(authedRequest(http.MethodPut, target, commenter, map[string]string{"text": "first!"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []struct {
		ID   uint   `json:"id"`
		Text string `json:"text"`
		Name string `json:"name"`
	}
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "first!", comments[0].Text)
	assert.Equal(t, "Commenter", comments[0].Name)

	// A second comment lands at the head of the list.
	resp, err = app.Test(authedRequest(http.MethodPut, target, author, map[string]string{"text": "second"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
}

func TestCommentValidationAndMissingPost(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	postID := createPost(t, app, token, "discuss")

	resp, err := app.Test(authedRequest(http.MethodPut,
		fmt.Sprintf("/api/post/comment/%d", postID), token, map[string]string{"text": ""}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodPut,
		"/api/post/comment/999", token, map[string]string{"text": "hi"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	_, app := setupTestServer(t)
	author := registerUser(t, app, "Author", "author@example.com")
	commenter := registerUser(t, app, "Commenter", "commenter@example.com")
	postID := createPost(t, app, author, "discuss")

	resp, err := app.Test(authedRequest(http.MethodPut,
		fmt.Sprintf("/api/post/comment/%d", postID), commenter, map[string]string{"text": "mine"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)
	target := fmt.Sprintf("/api/post/comment/%d/%d", postID, comments[0].ID)

	// The post's author is not the comment's author.
	resp, err = app.Test(authedRequest(http.MethodDelete, target, author, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodDelete, target, commenter, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &comments)
	assert.Empty(t, comments)

	// Deleting it again is a 404.
	resp, err = app.Test(authedRequest(http.MethodDelete, target, commenter, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCommentWrongPost(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	firstPost := createPost(t, app, token, "one")
	secondPost := createPost(t, app, token, "two")

	resp, err := app.Test(authedRequest(http.MethodPut,
		fmt.Sprintf("/api/post/comment/%d", firstPost), token, map[string]string{"text": "on one"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)

	// The comment id exists but belongs to a different post.
	resp, err = app.Test(authedRequest(http.MethodDelete,
		fmt.Sprintf("/api/post/comment/%d/%d", secondPost, comments[0].ID), token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
