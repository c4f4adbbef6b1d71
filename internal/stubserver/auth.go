package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront-admin/internal/lib/password"
	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
	"github.com/magabrotheeeer/storefront-admin/internal/stubserver/response"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

// authResponse — ответ на login/register/check-status: пользователь
// вместе со свежим токеном.
type authResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	IsActive bool     `json:"isActive"`
	Roles    []string `json:"roles"`
	Token    string   `json:"token"`
}

// handleLogin godoc
// @Summary Вход по почте и паролю
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} authResponse
// @Failure 401 {object} response.Error
// @Router /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleLogin"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	email := strings.ToLower(req.Email)
	user, hash, ok := s.store.UserByEmail(email)
	if !ok || password.Compare(hash, req.Password) != nil {
		log.Info("credentials rejected", slog.String("email", email))
		response.Fail(w, r, http.StatusUnauthorized, "Credentials are not valid")
		return
	}

	s.respondWithToken(w, r, log, user)
}

// handleRegister godoc
// @Summary Регистрация нового пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} authResponse
// @Failure 400 {object} response.Error
// @Router /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleRegister"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.store.CreateUser(strings.ToLower(req.Email), hash, req.FullName)
	if err != nil {
		log.Info("registration rejected", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "Email already registered")
		return
	}

	render.Status(r, http.StatusCreated)
	s.respondWithToken(w, r, log, user)
}

// handleCheckStatus godoc
// @Summary Проверка токена и выдача свежего
// @Tags Auth
// @Produce json
// @Success 200 {object} authResponse
// @Failure 401 {object} response.Error
// @Router /auth/check-status [get]
func (s *Server) handleCheckStatus(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleCheckStatus"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(userIDKey).(string)
	user, ok := s.store.UserByID(userID)
	if !ok {
		log.Info("user from token not found", slog.String("user_id", userID))
		response.Fail(w, r, http.StatusUnauthorized, "Token not valid")
		return
	}

	s.respondWithToken(w, r, log, user)
}

// respondWithToken выпускает свежий токен и пишет единый auth-ответ.
func (s *Server) respondWithToken(w http.ResponseWriter, r *http.Request, log *slog.Logger, user models.User) {
	token, err := s.maker.Generate(user.ID, user.Email, user.Roles)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	render.JSON(w, r, authResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		IsActive: user.IsActive,
		Roles:    user.Roles,
		Token:    token,
	})
}

// validationMessage собирает нарушения валидации в одно сообщение.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request"
	}
	var msgs []string
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, "field "+e.Field()+" is a required field")
		case "email":
			msgs = append(msgs, "field "+e.Field()+" must be a valid email")
		case "min":
			msgs = append(msgs, "field "+e.Field()+" is too short")
		default:
			msgs = append(msgs, "field "+e.Field()+" is not valid")
		}
	}
	return strings.Join(msgs, ", ")
}
