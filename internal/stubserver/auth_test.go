package stubserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront-admin/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := New(log, config.StubServer{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
	srv.Seed()

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeAuth(t *testing.T, resp *http.Response) authResponse {
	t.Helper()
	var out authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, ts *httptest.Server, email string) authResponse {
	t.Helper()
	resp := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
		"fullName": "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeAuth(t, resp)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	created := register(t, ts, "admin@example.com")
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Token)
	assert.True(t, created.IsActive)
	// первый пользователь получает роль admin
	assert.Contains(t, created.Roles, "admin")

	resp := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logged := decodeAuth(t, resp)
	assert.Equal(t, created.ID, logged.ID)
	assert.NotEmpty(t, logged.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "admin@example.com")

	resp := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "admin@example.com")

	resp := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
		"fullName": "Second User",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "пустое тело", body: map[string]string{}},
		{name: "кривая почта", body: map[string]string{"email": "not-an-email", "password": "secret123", "fullName": "X"}},
		{name: "короткий пароль", body: map[string]string{"email": "a@b.com", "password": "123", "fullName": "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCheckStatus(t *testing.T) {
	ts := newTestServer(t)
	created := register(t, ts, "admin@example.com")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/auth/check-status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	refreshed := decodeAuth(t, resp)
	assert.Equal(t, created.ID, refreshed.ID)
	assert.NotEmpty(t, refreshed.Token)
}

func TestCheckStatus_NoToken(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/auth/check-status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
