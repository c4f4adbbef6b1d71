package stubserver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront-admin/internal/api"
	"github.com/magabrotheeeer/storefront-admin/internal/cache"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
	authservice "github.com/magabrotheeeer/storefront-admin/internal/services/auth"
	productservice "github.com/magabrotheeeer/storefront-admin/internal/services/product"
	"github.com/magabrotheeeer/storefront-admin/internal/tokenstore"
)

// Сквозной сценарий: SDK клиента работает против стаба так же,
// как против настоящего сервиса.
func TestClientAgainstStub(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tokens := tokenstore.New(filepath.Join(t.TempDir(), "token"))
	client := api.New(ts.URL, tokens, 5*time.Second)
	auth := authservice.New(client, tokens, log)
	products := productservice.New(client, cache.Noop{}, log, productservice.Options{PageSize: 10})

	// регистрация открывает сессию и сохраняет токен
	session, err := auth.Register(ctx, "Admin@Example.com", "secret123", "Admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", session.User.Email)

	saved, err := tokens.Get()
	require.NoError(t, err)
	assert.Equal(t, session.Token, saved)

	// локальное изображение выгружается при сохранении товара
	imgPath := filepath.Join(t.TempDir(), "front.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("jpeg-bytes"), 0o600))

	created, err := products.Upsert(ctx, models.DraftProduct{
		ID:     models.NewProductID,
		Title:  "Canvas Bag",
		Price:  "19.90",
		Stock:  "7",
		Gender: models.GenderWomen,
		Sizes:  []string{"M", "L"},
		Images: []string{"file://" + imgPath},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Images, 1)
	assert.Contains(t, created.Images[0], ts.URL+"/files/product/")

	// чтение возвращает то, что сохранено
	fetched, err := products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
	assert.Equal(t, 19.90, fetched.Price)
	assert.Equal(t, 7, fetched.Stock)

	// обновление по существующему идентификатору
	updated, err := products.Upsert(ctx, models.DraftProduct{
		ID:     created.ID,
		Title:  "Canvas Bag XL",
		Price:  "not-a-number", // нормализуется в 0
		Stock:  "9",
		Images: created.Images,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Canvas Bag XL", updated.Title)
	assert.Zero(t, updated.Price)

	// проверка статуса обновляет токен
	refreshed, err := auth.CheckStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshed.User.ID)

	// после выхода защищённые вызовы отвергаются
	require.NoError(t, auth.Logout(ctx))
	_, err = auth.CheckStatus(ctx)
	assert.ErrorIs(t, err, authservice.ErrNotAuthenticated)
}
