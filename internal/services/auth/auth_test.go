package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront-admin/internal/api"
)

// MockTokenStore реализует интерфейс auth.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Set(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockTokenStore) Remove() error {
	args := m.Called()
	return args.Error(0)
}

// readTokens — источник токена для api.Client в тестах.
type readTokens struct{ token string }

func (r readTokens) Get() (string, error) { return r.token, nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func authOK(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "user-1",
			"email":    "a@b.com",
			"fullName": "Admin User",
			"isActive": true,
			"roles":    []string{"admin"},
			"token":    token,
		})
	}
}

func TestLogin_LowercasesEmail(t *testing.T) {
	var sent map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		authOK("jwt-1")(w, r)
	}))
	defer srv.Close()

	tokens := new(MockTokenStore)
	tokens.On("Set", "jwt-1").Return(nil)

	svc := New(api.New(srv.URL, readTokens{}, 5*time.Second), tokens, testLogger())

	session, err := svc.Login(context.Background(), "  A@B.com ", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", sent["email"])
	assert.Equal(t, "secret123", sent["password"])
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, []string{"admin"}, session.User.Roles)
	assert.Equal(t, "jwt-1", session.Token)
	tokens.AssertExpectations(t)
}

func TestRegister_LowercasesEmailAndSendsFullName(t *testing.T) {
	var sent map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		authOK("jwt-2")(w, r)
	}))
	defer srv.Close()

	tokens := new(MockTokenStore)
	tokens.On("Set", "jwt-2").Return(nil)

	svc := New(api.New(srv.URL, readTokens{}, 5*time.Second), tokens, testLogger())

	_, err := svc.Register(context.Background(), "NEW@User.COM", "secret123", "New User")
	require.NoError(t, err)

	assert.Equal(t, "new@user.com", sent["email"])
	assert.Equal(t, "New User", sent["fullName"])
	tokens.AssertExpectations(t)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credentials are not valid"}`))
	}))
	defer srv.Close()

	tokens := new(MockTokenStore)
	svc := New(api.New(srv.URL, readTokens{}, 5*time.Second), tokens, testLogger())

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "Set", mock.Anything)
}

// Недоступный сервер — это не отказ в доступе: ошибка не должна
// схлопываться в ErrInvalidCredentials.
func TestLogin_NetworkFailureIsDistinguishable(t *testing.T) {
	tokens := new(MockTokenStore)
	svc := New(api.New("http://127.0.0.1:1", readTokens{}, 200*time.Millisecond), tokens, testLogger())

	_, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestCheckStatus_RefreshesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/check-status", r.URL.Path)
		require.Equal(t, "Bearer old-token", r.Header.Get("Authorization"))
		authOK("fresh-token")(w, r)
	}))
	defer srv.Close()

	tokens := new(MockTokenStore)
	tokens.On("Set", "fresh-token").Return(nil)

	svc := New(api.New(srv.URL, readTokens{token: "old-token"}, 5*time.Second), tokens, testLogger())

	session, err := svc.CheckStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", session.Token)
	tokens.AssertExpectations(t)
}

func TestCheckStatus_ExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token not valid"}`))
	}))
	defer srv.Close()

	svc := New(api.New(srv.URL, readTokens{token: "stale"}, 5*time.Second), new(MockTokenStore), testLogger())

	_, err := svc.CheckStatus(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogout_RemovesToken(t *testing.T) {
	tokens := new(MockTokenStore)
	tokens.On("Remove").Return(nil)

	svc := New(nil, tokens, testLogger())
	require.NoError(t, svc.Logout(context.Background()))
	tokens.AssertExpectations(t)
}
