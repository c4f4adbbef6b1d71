package stubserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/stubserver/response"
)

// ctxKey тип для ключей контекста HTTP-запроса.
type ctxKey string

// userIDKey — ключ идентификатора пользователя в контексте запроса.
const userIDKey ctxKey = "user_id"

// jwtMiddleware проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет идентификатор пользователя в контекст
// запроса, иначе возвращает HTTP 401 Unauthorized.
func (s *Server) jwtMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "stubserver.jwtMiddleware"
		log := s.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("missing or invalid authorization header")
			response.Fail(w, r, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := s.maker.Parse(tokenStr)
		if err != nil {
			log.Info("invalid or expired token", sl.Err(err))
			response.Fail(w, r, http.StatusUnauthorized, "Token not valid")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitMiddleware грубо ограничивает частоту запросов к стабу.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.log.Warn("too many requests")
			response.Fail(w, r, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
