// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Claims расширяет стандартные claims JWT, добавляя email и роли пользователя.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// Generate создаёт токен для пользователя с указанным id, email и ролями.
	Generate(userID, email string, roles []string) (string, error)
	// Parse проверяет подпись токена и возвращает *Claims.
	Parse(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
