package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfiles(t *testing.T) {
	app, _ := newTestApp(t, false)
	writer := signupUser(t, app, "writer")
	reader := signupUser(t, app, "reader")

	writerID := createArticleViaAPI(t, app, writer, "First", "art")
	createArticleViaAPI(t, app, writer, "Second", "sport")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/articles/%d/like", writerID), nil, reader))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Own profile via /me.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, writer))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "writer", user["username"])
	assert.Len(t, body["articles"].([]interface{}), 2)
	assert.Equal(t, float64(1), body["likes_received"])

	// Someone else's profile by id needs a session.
	id := uint(user["id"].(float64))
	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, reader))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "writer", body["user"].(map[string]interface{})["username"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/9999", nil, reader))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestUpdateProfile(t *testing.T) {
	app, _ := newTestApp(t, false)
	token := signupUser(t, app, "original")
	signupUser(t, app, "occupied")

	// Anonymous updates are rejected.
	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{"username": "nobody"}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Taken username is a validation error.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{"username": "occupied"}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "taken")

	// Too short.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{"username": "ab"}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// A free username sticks.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{"username": "renamed"}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "renamed", body["user"].(map[string]interface{})["username"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, token))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, "renamed", body["user"].(map[string]interface{})["username"])
}

func TestSearchUsersEndpoint(t *testing.T) {
	app, _ := newTestApp(t, false)
	signupUser(t, app, "amelia")
	signupUser(t, app, "amir")
	signupUser(t, app, "bob")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=am", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	users := body["users"].([]interface{})
	require.Len(t, users, 2)
	assert.Equal(t, "amelia", users[0].(map[string]interface{})["username"])
	assert.Equal(t, "amir", users[1].(map[string]interface{})["username"])

	// Without a query every account is listed.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/search", nil, ""))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Len(t, body["users"].([]interface{}), 3)
}
