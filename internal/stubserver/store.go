package stubserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/storefront-admin/internal/models"
)

// ErrEmailTaken возвращается при регистрации на уже занятую почту.
var ErrEmailTaken = errors.New("email already registered")

// storedUser — пользователь стаба вместе с bcrypt-хэшем пароля.
type storedUser struct {
	models.User
	passwordHash string
}

// Store — потокобезопасное хранилище стаба в памяти.
// Содержимое живёт до перезапуска процесса.
type Store struct {
	mu       sync.RWMutex
	users    map[string]storedUser // ключ — почта
	products map[string]models.RemoteProduct
	files    map[string][]byte
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]storedUser),
		products: make(map[string]models.RemoteProduct),
		files:    make(map[string][]byte),
	}
}

// CreateUser регистрирует пользователя. Первая учётная запись получает
// роль admin в дополнение к user.
func (s *Store) CreateUser(email, passwordHash, fullName string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return models.User{}, ErrEmailTaken
	}
	roles := []string{"user"}
	if len(s.users) == 0 {
		roles = append(roles, "admin")
	}
	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: fullName,
		IsActive: true,
		Roles:    roles,
	}
	s.users[email] = storedUser{User: user, passwordHash: passwordHash}
	return user, nil
}

// UserByEmail возвращает пользователя и хэш его пароля.
func (s *Store) UserByEmail(email string) (models.User, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.users[email]
	return stored.User, stored.passwordHash, ok
}

// UserByID возвращает пользователя по идентификатору.
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stored := range s.users {
		if stored.ID == id {
			return stored.User, true
		}
	}
	return models.User{}, false
}

// CreateProduct сохраняет новый товар, назначая идентификатор и,
// при отсутствии, slug из названия.
func (s *Store) CreateProduct(remote models.RemoteProduct) models.RemoteProduct {
	s.mu.Lock()
	defer s.mu.Unlock()

	remote.ID = uuid.NewString()
	if remote.Slug == "" {
		remote.Slug = slugify(remote.Title)
	}
	s.products[remote.ID] = remote
	return remote
}

// UpdateProduct заменяет сохранённый товар целиком, сохраняя его ID.
func (s *Store) UpdateProduct(id string, remote models.RemoteProduct) (models.RemoteProduct, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return models.RemoteProduct{}, false
	}
	remote.ID = id
	if remote.Slug == "" {
		remote.Slug = slugify(remote.Title)
	}
	s.products[id] = remote
	return remote, true
}

// ProductByID возвращает товар по идентификатору.
func (s *Store) ProductByID(id string) (models.RemoteProduct, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

// ListProducts возвращает страницу товаров, отсортированных по slug
// для устойчивого порядка выдачи.
func (s *Store) ListProducts(limit, offset int) []models.RemoteProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.RemoteProduct, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })

	if offset >= len(all) {
		return []models.RemoteProduct{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// SaveFile сохраняет содержимое выгруженного файла под заданным именем.
func (s *Store) SaveFile(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
}

// File возвращает содержимое ранее выгруженного файла.
func (s *Store) File(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	return data, ok
}

// slugify строит slug в манере удалённого сервиса: нижний регистр,
// пробелы и апострофы заменяются подчёркиваниями.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, "'", "")
	return slug
}
