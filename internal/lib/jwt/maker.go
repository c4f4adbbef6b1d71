package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает пользовательские данные, хранящиеся в JWT.
// Идентификатор пользователя лежит в стандартном поле Subject.
type Claims struct {
	Email                string   `json:"email"` // Электронная почта пользователя
	Roles                []string `json:"roles"` // Роли пользователя
	jwt.RegisteredClaims          // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Generate создает JWT токен для пользователя, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) Generate(userID, email string, roles []string) (string, error) {
	claims := Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// Parse парсит JWT токен, проверяет его подпись и валидность,
// возвращает Claims с данными, если токен корректен.
func (j *MakerImpl) Parse(tokenStr string) (*Claims, error) {
	const op = "jwt.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// ReadExpiry извлекает срок действия токена без проверки подписи.
// Используется на стороне клиента, которому секретный ключ сервера
// недоступен. Если срок прочитать нельзя, возвращается нулевое время.
func ReadExpiry(tokenStr string) time.Time {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
