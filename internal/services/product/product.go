// Package product содержит логику бизнес-уровня для работы с каталогом
// товаров: чтение по идентификатору и страницами, сохранение с
// предварительной выгрузкой локальных изображений, кеширование ответов.
package product

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator"
	"github.com/spf13/cast"

	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
)

// Client описывает контракт HTTP-клиента, нужный сервису каталога.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Upload(ctx context.Context, path, field, filename, contentType string, r io.Reader, out any) error
	BaseURL() string
}

// Cache описывает методы для кэширования данных каталога.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Options задаёт параметры работы сервиса каталога.
type Options struct {
	PageSize    int           // Размер страницы списка товаров
	UploadLimit int           // Максимум одновременных выгрузок изображений
	CacheTTL    time.Duration // Время жизни записей кеша
}

// Service реализует операции каталога поверх HTTP-клиента и кеша.
type Service struct {
	client   Client
	cache    Cache
	log      *slog.Logger
	validate *validator.Validate
	opts     Options
}

// New создает новый экземпляр Service.
func New(client Client, cache Cache, log *slog.Logger, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.UploadLimit <= 0 {
		opts.UploadLimit = 3
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &Service{
		client:   client,
		cache:    cache,
		log:      log,
		validate: validator.New(),
		opts:     opts,
	}
}

// GetByID возвращает товар по идентификатору.
//
// Идентификатор models.NewProductID означает экран создания нового товара:
// возвращается локальная заготовка без сетевого вызова и без кеша.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "product.GetByID"

	if id == models.NewProductID {
		p := models.NewEmptyProduct()
		return &p, nil
	}

	cacheKey := "products:" + id
	var cached models.Product
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), sl.Err(err))
	} else if found {
		return &cached, nil
	}

	var remote models.RemoteProduct
	if err := s.client.Get(ctx, "/products/"+id, &remote); err != nil {
		return nil, fmt.Errorf("%s: get product %q: %w", op, id, err)
	}

	entity := models.ProductFromRemote(remote, s.client.BaseURL())
	if err := s.cache.Set(ctx, cacheKey, entity, s.opts.CacheTTL); err != nil {
		s.log.Warn("cache write failed", slog.String("key", cacheKey), sl.Err(err))
	}
	return &entity, nil
}

// List возвращает страницу товаров. Нумерация страниц начинается с нуля,
// размер страницы задаётся в Options.
func (s *Service) List(ctx context.Context, page int) ([]models.Product, error) {
	const op = "product.List"

	if page < 0 {
		page = 0
	}
	cacheKey := fmt.Sprintf("products:page:%d:%d", page, s.opts.PageSize)
	var cached []models.Product
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), sl.Err(err))
	} else if found {
		return cached, nil
	}

	path := fmt.Sprintf("/products?limit=%d&offset=%d", s.opts.PageSize, page*s.opts.PageSize)
	var remotes []models.RemoteProduct
	if err := s.client.Get(ctx, path, &remotes); err != nil {
		return nil, fmt.Errorf("%s: page %d: %w", op, page, err)
	}

	entities := make([]models.Product, 0, len(remotes))
	for _, remote := range remotes {
		entities = append(entities, models.ProductFromRemote(remote, s.client.BaseURL()))
	}
	if err := s.cache.Set(ctx, cacheKey, entities, s.opts.CacheTTL); err != nil {
		s.log.Warn("cache write failed", slog.String("key", cacheKey), sl.Err(err))
	}
	return entities, nil
}

// upsertPayload — тело запросов POST /products/ и PATCH /products/{id}.
// Идентификатор в тело не входит.
type upsertPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Slug        string   `json:"slug,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// Upsert сохраняет черновик товара: создаёт новый либо обновляет
// существующий — в зависимости от идентификатора.
//
// Нечисловые значения цены и остатка молча приводятся к нулю: это
// нормализация пользовательского ввода, а не ошибка валидации. Перед
// отправкой все локальные изображения выгружаются на сервер; отказ любой
// выгрузки отменяет сохранение целиком.
func (s *Service) Upsert(ctx context.Context, draft models.DraftProduct) (*models.Product, error) {
	const op = "product.Upsert"

	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	images, err := s.reconcileImages(ctx, draft.Images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload := upsertPayload{
		Title:       draft.Title,
		Description: draft.Description,
		Price:       cast.ToFloat64(draft.Price), // нечисловой ввод -> 0
		Slug:        draft.Slug,
		Gender:      draft.Gender,
		Sizes:       orEmpty(draft.Sizes),
		Stock:       cast.ToInt(draft.Stock), // нечисловой ввод -> 0
		Tags:        orEmpty(draft.Tags),
		Images:      images,
	}

	var remote models.RemoteProduct
	if draft.ID != "" && draft.ID != models.NewProductID {
		err = s.client.Patch(ctx, "/products/"+draft.ID, payload, &remote)
	} else {
		err = s.client.Post(ctx, "/products/", payload, &remote)
	}
	if err != nil {
		s.log.Error("failed to save product", slog.String("id", draft.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: save product: %w", op, err)
	}

	entity := models.ProductFromRemote(remote, s.client.BaseURL())
	cacheKey := "products:" + entity.ID
	if err := s.cache.Set(ctx, cacheKey, entity, s.opts.CacheTTL); err != nil {
		s.log.Warn("cache write failed", slog.String("key", cacheKey), sl.Err(err))
	}
	s.log.Info("product saved", slog.String("id", entity.ID))
	return &entity, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
