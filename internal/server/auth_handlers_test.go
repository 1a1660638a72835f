package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupValidation(t *testing.T) {
	app, _ := newTestApp(t, false)

	tests := []struct {
		name           string
		payload        fiber.Map
		expectedStatus int
	}{
		{
			name:           "missing fields",
			payload:        fiber.Map{"username": "someone"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short username",
			payload: fiber.Map{
				"username": "abc", "email": "abc@example.com", "password": "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "email without at sign",
			payload: fiber.Map{
				"username": "someone", "email": "not-an-email", "password": "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			payload: fiber.Map{
				"username": "someone", "email": "someone@example.com", "password": "abc",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "minimal valid email",
			payload: fiber.Map{
				"username": "someone", "email": "a@b", "password": "secret123",
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/api/auth/signup", tt.payload, "")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSignupDistinctDuplicateMessages(t *testing.T) {
	app, _ := newTestApp(t, false)
	signupUser(t, app, "imane")

	req := jsonRequest(t, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "imane", "email": "fresh@example.com", "password": "secret123",
	}, "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "Username")

	req = jsonRequest(t, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "different", "email": "imane@example.com", "password": "secret123",
	}, "")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Contains(t, body["error"], "Email")
}

func TestSignupNeverLeaksPassword(t *testing.T) {
	app, _ := newTestApp(t, false)

	req := jsonRequest(t, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": "imane", "email": "imane@example.com", "password": "secret123",
	}, "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)

	user := body["user"].(map[string]interface{})
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
	assert.Equal(t, "default.jpg", user["profile_pic"])
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t, false)
	signupUser(t, app, "imane")

	// Wrong password.
	req := jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "imane@example.com", "password": "wrong-pass",
	}, "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Unknown email gets the same answer as a wrong password.
	req = jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "nobody@example.com", "password": "secret123",
	}, "")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Correct credentials.
	req = jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "imane@example.com", "password": "secret123",
	}, "")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestCheckAuth(t *testing.T) {
	app, _ := newTestApp(t, false)
	token := signupUser(t, app, "imane")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/check", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "imane", body["user"].(map[string]interface{})["username"])

	// No token.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/check", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestLogoutRevokesSession(t *testing.T) {
	app, _ := newTestApp(t, true)
	token := signupUser(t, app, "imane")

	// Authenticated before logout.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/check", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/logout", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// The token is dead even though it has not expired.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/check", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Logging out again with the dead token is rejected the same way.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/logout", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}
