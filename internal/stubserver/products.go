package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
	"github.com/magabrotheeeer/storefront-admin/internal/stubserver/response"
)

const defaultPageSize = 10

// productPayload — тело POST /products/ и PATCH /products/{id}.
type productPayload struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Slug        string   `json:"slug"`
	Gender      string   `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,oneof=XS S M L XL"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

func (p productPayload) toRemote() models.RemoteProduct {
	return models.RemoteProduct{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Slug:        p.Slug,
		Gender:      p.Gender,
		Sizes:       p.Sizes,
		Stock:       p.Stock,
		Tags:        p.Tags,
		Images:      p.Images,
	}
}

// handleListProducts godoc
// @Summary Страница товаров каталога
// @Tags Products
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.RemoteProduct
// @Router /products [get]
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	offset := queryInt(r, "offset", 0)

	render.JSON(w, r, s.store.ListProducts(limit, offset))
}

// handleGetProduct godoc
// @Summary Товар по идентификатору
// @Tags Products
// @Produce json
// @Success 200 {object} models.RemoteProduct
// @Failure 404 {object} response.Error
// @Router /products/{id} [get]
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, ok := s.store.ProductByID(id)
	if !ok {
		response.Fail(w, r, http.StatusNotFound, "Product with id "+id+" not found")
		return
	}
	render.JSON(w, r, product)
}

// handleCreateProduct godoc
// @Summary Создание товара
// @Tags Products
// @Accept json
// @Produce json
// @Success 201 {object} models.RemoteProduct
// @Failure 400 {object} response.Error
// @Router /products/ [post]
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleCreateProduct"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(payload); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	created := s.store.CreateProduct(payload.toRemote())
	log.Info("product created", slog.String("id", created.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// handleUpdateProduct godoc
// @Summary Обновление товара
// @Tags Products
// @Accept json
// @Produce json
// @Success 200 {object} models.RemoteProduct
// @Failure 404 {object} response.Error
// @Router /products/{id} [patch]
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleUpdateProduct"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	id := chi.URLParam(r, "id")

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(payload); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	updated, ok := s.store.UpdateProduct(id, payload.toRemote())
	if !ok {
		response.Fail(w, r, http.StatusNotFound, "Product with id "+id+" not found")
		return
	}
	log.Info("product updated", slog.String("id", id))

	render.JSON(w, r, updated)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
