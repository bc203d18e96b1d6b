package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProfile(t *testing.T, app *fiber.App, token string, body map[string]any) map[string]any {
	t.Helper()
	resp, err := app.Test(authedRequest(http.MethodPost, "/api/profile", token, body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeBody(t, resp, &profile)
	return profile
}

func TestUpsertProfileSkillsAsString(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")

	profile := createProfile(t, app, token, map[string]any{
		"status": "Developer",
		"skills": "Go, SQL ,Docker",
	})

	assert.Equal(t, []any{"Go", "SQL", "Docker"}, profile["skills"],
		"comma-separated skills are split, trimmed, and kept in order")
}

func TestUpsertProfileSkillsAsList(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")

	profile := createProfile(t, app, token, map[string]any{
		"status": "Developer",
		"skills": []string{"Go", "SQL"},
		"company": "Acme",
		"twitter": "https://twitter.com/jane",
	})

	assert.Equal(t, []any{"Go", "SQL"}, profile["skills"])
	assert.Equal(t, "Acme", profile["company"])
	social, ok := profile["social"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://twitter.com/jane", social["twitter"])
}

func TestUpsertProfileUpdatesExisting(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")

	first := createProfile(t, app, token, map[string]any{
		"status": "Developer",
		"skills": "Go",
	})
	second := createProfile(t, app, token, map[string]any{
		"status": "Senior Developer",
		"skills": "Go,SQL",
	})

	assert.Equal(t, first["id"], second["id"], "upsert must not create a second profile")
	assert.Equal(t, "Senior Developer", second["status"])
}

func TestUpsertProfileValidation(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")

	for name, body := range map[string]map[string]any{
		"Missing Status": {"skills": "Go"},
		"Missing Skills": {"status": "Developer"},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := app.Test(authedRequest(http.MethodPost, "/api/profile", token, body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetMyProfileNotFound(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/profile/me", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListProfilesIsPublic(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	createProfile(t, app, token, map[string]any{"status": "Developer", "skills": "Go"})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profiles []map[string]any
	decodeBody(t, resp, &profiles)
	require.Len(t, profiles, 1)

	user, ok := profiles[0]["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", user["name"])
	assert.Contains(t, user["avatar"], "gravatar.com")
	assert.NotContains(t, user, "email", "public profiles must not expose emails")
}

func TestGetProfileByUserIsPublic(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	createProfile(t, app, token, map[string]any{"status": "Developer", "skills": "Go"})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/profile/user/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/profile/user/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExperienceLifecycle(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	createProfile(t, app, token, map[string]any{"status": "Developer", "skills": "Go"})

	resp, err := app.Test(authedRequest(http.MethodPut, "/api/profile/experience", token, map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Experience []struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		} `json:"experience"`
	}
	decodeBody(t, resp, &profile)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Engineer", profile.Experience[0].Title)

	// Missing required fields never touch the profile.
	resp, err = app.Test(authedRequest(http.MethodPut, "/api/profile/experience", token, map[string]any{
		"company": "Acme",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Remove the entry, then removing again is a 404.
	resp, err = app.Test(authedRequest(http.MethodDelete, "/api/profile/experience/1", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodDelete, "/api/profile/experience/1", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEducationLifecycle(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	createProfile(t, app, token, map[string]any{"status": "Developer", "skills": "Go"})

	resp, err := app.Test(authedRequest(http.MethodPut, "/api/profile/education", token, map[string]any{
		"school":       "State University",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2015-09-01",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodPut, "/api/profile/education", token, map[string]any{
		"school": "Incomplete",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodDelete, "/api/profile/education/1", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")
	createProfile(t, app, token, map[string]any{"status": "Developer", "skills": "Go"})

	resp, err := app.Test(authedRequest(http.MethodPost, "/api/post", token, map[string]string{"text": "hi"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodDelete, "/api/profile", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The account is gone: the still-valid token no longer resolves a user.
	resp, err = app.Test(authedRequest(http.MethodGet, "/api/auth", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Their profile and posts are gone too.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/profile/user/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	other := registerUser(t, app, "Other", "other@example.com")
	resp, err = app.Test(authedRequest(http.MethodGet, "/api/post", other, nil))
	require.NoError(t, err)
	var posts []map[string]any
	decodeBody(t, resp, &posts)
	assert.Empty(t, posts)
}

func TestReRegisterAfterAccountDeletion(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Jane Doe", "jane@example.com")

	resp, err := app.Test(authedRequest(http.MethodDelete, "/api/profile", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The email is free again once the account is gone.
	registerUser(t, app, "Jane Doe", "jane@example.com")
}
