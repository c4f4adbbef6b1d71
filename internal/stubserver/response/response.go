// Package response содержит формат ошибок локального стаба витрины.
// Формат повторяет ответы настоящего сервиса, чтобы клиент разбирал
// их одним и тем же кодом.
package response

import (
	"net/http"

	"github.com/go-chi/render"
)

// Error — тело ответа с ошибкой: сообщение, текст статуса и код.
type Error struct {
	Message    string `json:"message"`
	Err        string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode"`
}

// Fail пишет ошибку с заданным HTTP-статусом.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error{
		Message:    msg,
		Err:        http.StatusText(status),
		StatusCode: status,
	})
}
