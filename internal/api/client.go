// Package api реализует аутентифицированный HTTP-клиент удалённого
// сервиса витрины — единственную точку выхода в сеть.
//
// Перед каждым запросом клиент заново читает bearer-токен из хранилища,
// поэтому токен, обновлённый после логина, виден уже следующему запросу.
// Ответы вне диапазона 2xx превращаются в *Error с HTTP-статусом и телом
// ошибки сервера. Повторных попыток клиент не делает.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// TokenSource отдаёт текущий bearer-токен; пустая строка — токена нет.
type TokenSource interface {
	Get() (string, error)
}

// Client выполняет запросы к удалённому API поверх настроенного базового URL.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New создаёт клиент. baseURL указывается без завершающего слэша.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL возвращает базовый URL клиента. Используется при построении
// полных URL изображений из серверных имён файлов.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get выполняет GET-запрос и декодирует JSON-ответ в out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Post выполняет POST-запрос с JSON-телом body и декодирует ответ в out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Patch выполняет PATCH-запрос с JSON-телом body и декодирует ответ в out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Upload отправляет содержимое r как multipart/form-data файл в поле field
// с именем filename и типом contentType, декодируя ответ в out.
func (c *Client) Upload(ctx context.Context, path, field, filename, contentType string, r io.Reader, out any) error {
	const op = "api.Upload"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename),
	}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = io.Copy(part, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := c.authorize(req); err != nil {
		return err
	}
	return c.do(req, out)
}

// newRequest собирает запрос с JSON-телом и свежим bearer-токеном.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	const op = "api.newRequest"

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		return nil, err
	}
	return req, nil
}

// authorize читает токен из хранилища непосредственно перед отправкой.
// Без токена запрос уходит неаутентифицированным.
func (c *Client) authorize(req *http.Request) error {
	const op = "api.authorize"
	token, err := c.tokens.Get()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	const op = "api.do"

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	observe(req.Method, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
