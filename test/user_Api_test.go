package test

import (
	"braindumpBackend/domain/user"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	server := SetupTestServer(t)

	testCases := []struct {
		name         string
		request      user.RegistrationIn
		expectedCode int
	}{
		{name: "registers new user", request: user.RegistrationIn{Email: "erin@example.com", Name: "Erin", Password: "correct-horse"}, expectedCode: http.StatusOK},
		{name: "email already taken", request: user.RegistrationIn{Email: "alice@example.com", Name: "Alice", Password: "correct-horse"}, expectedCode: http.StatusConflict},
		{name: "password too short", request: user.RegistrationIn{Email: "frank@example.com", Name: "Frank", Password: "short"}, expectedCode: http.StatusUnprocessableEntity},
		{name: "invalid email", request: user.RegistrationIn{Email: "frank", Name: "Frank", Password: "correct-horse"}, expectedCode: http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := server.Request(t, http.MethodPost, "/users/register", "", tc.request)
			assert.Equal(t, tc.expectedCode, resp.Code, resp.Body.String())
		})
	}

	t.Run("login with wrong password", func(t *testing.T) {
		resp := server.Request(t, http.MethodPost, "/users/login/native", "", user.CredentialsIn{Email: "alice@example.com", Password: "wrong"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("login and fetch profile", func(t *testing.T) {
		resp := server.Request(t, http.MethodPost, "/users/login/native", "", user.CredentialsIn{Email: "erin@example.com", Password: "correct-horse"})
		require.Equal(t, http.StatusOK, resp.Code)
		accessToken := decodePayload[string](t, resp)

		resp = server.Request(t, http.MethodGet, "/users/me", accessToken, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		me := decodePayload[user.UserOut](t, resp)
		assert.Equal(t, "erin@example.com", me.Email)
		assert.Equal(t, "Erin", me.Name)
	})
}

func TestMe_Unauthenticated(t *testing.T) {
	server := SetupTestServer(t)

	resp := server.Request(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = server.Request(t, http.MethodGet, "/users/me", "invalid.jwt.token", nil)
	assert.Equal(t, 498, resp.Code)
}

func TestInvalidToken_OnOptionalRoutes(t *testing.T) {
	server := SetupTestServer(t)

	// A broken token on a route with optional authentication counts as anonymous
	resp := server.Request(t, http.MethodGet, "/brain-dumps", "invalid.jwt.token", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}
