package test

import (
	"braindumpBackend/app"
	"braindumpBackend/auth"
	"braindumpBackend/config"
	"braindumpBackend/events"
	"braindumpBackend/storage"
	"braindumpBackend/utils"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router      *gin.Engine
	AuthManager auth.AuthManager
	DB          *gorm.DB
	Data        *TestData
	Events      *recordingPublisher
}

type recordingPublisher struct {
	mutex         sync.Mutex
	notifications []events.Notification
}

func (p *recordingPublisher) Name() string {
	return "recorder"
}

func (p *recordingPublisher) Publish(_ context.Context, notification events.Notification) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.notifications = append(p.notifications, notification)
	return nil
}

func (p *recordingPublisher) Received(eventName string) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, notification := range p.notifications {
		if notification.Event == eventName {
			return true
		}
	}
	return false
}

func SetupTestServer(t *testing.T) *TestServer {
	t.Helper()
	t.Setenv("BD_JWT_SECRET", "test-secret")

	testConfig := &config.BrainDumpConfig{
		Auth: config.AuthConfig{
			EnableNative:       true,
			AccessTokenMinutes: 15,
			AuthTokenHours:     24,
		},
	}

	db, err := storage.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db, app.Models()...))

	data, err := GenerateTestData(db)
	require.NoError(t, err)

	recorder := &recordingPublisher{}
	authManager := auth.CreateAuthManager(testConfig)
	testApp, err := app.CreateApp(testConfig, db, authManager, recorder)
	require.NoError(t, err)

	return &TestServer{
		Router:      testApp.Engine,
		AuthManager: authManager,
		DB:          db,
		Data:        data,
		Events:      recorder,
	}
}

// TokenFor returns an access token of a seeded user.
func (s *TestServer) TokenFor(t *testing.T, email string) string {
	t.Helper()

	token, err := s.AuthManager.CreateAccessToken(s.Data.Users[email].ID)
	require.NoError(t, err)
	return token
}

// Request performs a request with an optional access token and JSON body.
func (s *TestServer) Request(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{
			Name:  "accessToken",
			Value: token,
		})
	}

	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)
	return resp
}

func decodePayload[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var response utils.OkResponse[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response), resp.Body.String())
	return response.Payload
}
