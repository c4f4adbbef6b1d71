// Package auth содержит логику бизнес-уровня для аутентификации
// администратора витрины: вход, регистрацию, проверку статуса сессии
// и выход.
//
// Сервис сам сохраняет полученный токен в хранилище, оставаясь его
// единственным писателем. Ошибки типизированы: отказ в доступе
// отличим от недоступности сервера.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/storefront-admin/internal/api"
	jwtlib "github.com/magabrotheeeer/storefront-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
)

// ErrInvalidCredentials возвращается, когда сервер отверг почту или пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotAuthenticated возвращается, когда сохранённый токен
// отсутствует либо больше не принимается сервером.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client описывает контракт HTTP-клиента, нужный сервису аутентификации.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// TokenStore описывает контракт хранилища токена со стороны писателя.
type TokenStore interface {
	Set(token string) error
	Remove() error
}

// Service отвечает за вход, регистрацию и проверку статуса сессии.
type Service struct {
	client Client
	tokens TokenStore
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(client Client, tokens TokenStore, log *slog.Logger) *Service {
	return &Service{
		client: client,
		tokens: tokens,
		log:    log,
	}
}

// authResponse — ответ сервера на login/register/check-status.
type authResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	IsActive bool     `json:"isActive"`
	Roles    []string `json:"roles"`
	Token    string   `json:"token"`
}

// Login выполняет вход по почте и паролю. Почта приводится к нижнему
// регистру до отправки. Успешный вход сохраняет токен в хранилище.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "auth.Login"

	body := map[string]string{
		"email":    normalizeEmail(email),
		"password": password,
	}
	var resp authResponse
	if err := s.client.Post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, s.classify(op, err)
	}
	return s.startSession(op, resp)
}

// Register создаёт учётную запись и сразу открывает сессию.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*models.Session, error) {
	const op = "auth.Register"

	body := map[string]string{
		"email":    normalizeEmail(email),
		"password": password,
		"fullName": fullName,
	}
	var resp authResponse
	if err := s.client.Post(ctx, "/auth/register", body, &resp); err != nil {
		return nil, s.classify(op, err)
	}
	return s.startSession(op, resp)
}

// CheckStatus проверяет сохранённый токен и получает вместо него свежий.
// Сервер возвращает тот же состав полей, что и при входе.
func (s *Service) CheckStatus(ctx context.Context) (*models.Session, error) {
	const op = "auth.CheckStatus"

	var resp authResponse
	if err := s.client.Get(ctx, "/auth/check-status", &resp); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%s: %w", op, ErrNotAuthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.startSession(op, resp)
}

// Logout удаляет токен из хранилища. Серверного вызова нет:
// bearer-токены на сервере не отзываются.
func (s *Service) Logout(_ context.Context) error {
	const op = "auth.Logout"
	if err := s.tokens.Remove(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("session cleared")
	return nil
}

// classify переводит отказ сервера 400/401 в ErrInvalidCredentials,
// остальные ошибки (сеть, 5xx) оборачивает как есть.
func (s *Service) classify(op string, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
		s.log.Info("authentication rejected", slog.Int("status", apiErr.StatusCode))
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	s.log.Error("authentication request failed", sl.Err(err))
	return fmt.Errorf("%s: %w", op, err)
}

// startSession сохраняет токен и собирает сессию из ответа сервера.
func (s *Service) startSession(op string, resp authResponse) (*models.Session, error) {
	if err := s.tokens.Set(resp.Token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("session started", slog.String("email", resp.Email))
	return &models.Session{
		User: models.User{
			ID:       resp.ID,
			Email:    resp.Email,
			FullName: resp.FullName,
			IsActive: resp.IsActive,
			Roles:    resp.Roles,
		},
		Token:     resp.Token,
		ExpiresAt: jwtlib.ReadExpiry(resp.Token),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
