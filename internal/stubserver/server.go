// Package stubserver реализует локальный стаб удалённого сервиса витрины.
//
// Стаб хранит всё в памяти и повторяет внешний контракт настоящего API:
// /auth/login, /auth/register, /auth/check-status, /products, /files/product.
// Используется для разработки клиента без доступа к настоящему серверу
// и в интеграционных тестах.
package stubserver

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/storefront-admin/internal/config"
	jwtlib "github.com/magabrotheeeer/storefront-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
)

// Server объединяет зависимости обработчиков стаба.
type Server struct {
	log      *slog.Logger
	store    *Store
	maker    jwtlib.Maker
	validate *validator.Validate
	limiter  *rate.Limiter
}

// New создаёт стаб с пустым хранилищем.
func New(log *slog.Logger, cfg config.StubServer) *Server {
	return &Server{
		log:      log,
		store:    NewStore(),
		maker:    jwtlib.NewMaker(cfg.JWTSecret, cfg.TokenTTL),
		validate: validator.New(),
		limiter:  rate.NewLimiter(rate.Limit(200), 400),
	}
}

// Router собирает маршруты стаба.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// URLFormat здесь не используется: он срезал бы расширение
	// из имени файла в /files/product/{name}.
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)
	r.Use(s.rateLimitMiddleware)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	r.Get("/products", s.handleListProducts)
	r.Get("/products/{id}", s.handleGetProduct)
	r.Get("/files/product/{name}", s.handleGetFile)

	r.Group(func(r chi.Router) {
		r.Use(s.jwtMiddleware)
		r.Get("/auth/check-status", s.handleCheckStatus)
		r.Post("/products/", s.handleCreateProduct)
		r.Patch("/products/{id}", s.handleUpdateProduct)
		r.Post("/files/product", s.handleUploadFile)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}

// Seed наполняет хранилище демонстрационными товарами.
func (s *Server) Seed() {
	seed := []models.RemoteProduct{
		{
			Title:       "Classic T-Shirt",
			Description: "Plain cotton t-shirt",
			Price:       25,
			Gender:      models.GenderUnisex,
			Sizes:       []string{"S", "M", "L"},
			Stock:       40,
			Tags:        []string{"shirt"},
			Images:      []string{},
		},
		{
			Title:       "Kids Rain Jacket",
			Description: "Waterproof jacket",
			Price:       55.5,
			Gender:      models.GenderKid,
			Sizes:       []string{"XS", "S"},
			Stock:       12,
			Tags:        []string{"jacket", "kids"},
			Images:      []string{},
		},
	}
	for _, p := range seed {
		s.store.CreateProduct(p)
	}
}
