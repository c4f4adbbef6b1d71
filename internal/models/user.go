// Package models содержит доменные структуры клиента витрины:
// пользователя, сессию и товар, а также вспомогательные типы
// для приёма данных из внешних источников (JSON-ответы сервера, формы).
package models

import "time"

// User представляет учётную запись администратора витрины.
// Создаётся из ответа сервера на login/register/check-status
// и на стороне клиента не изменяется.
type User struct {
	ID       string   // Идентификатор пользователя на сервере
	Email    string   // Электронная почта (нижний регистр)
	FullName string   // Полное имя
	IsActive bool     // Активна ли учётная запись
	Roles    []string // Набор ролей (admin, user и пр.)
}

// Session объединяет пользователя и его bearer-токен.
// Живёт до logout либо до отказа сервера принять токен.
type Session struct {
	User      User      // Пользователь сессии
	Token     string    // Bearer-токен для Authorization
	ExpiresAt time.Time // Срок действия токена; нулевое значение — срок неизвестен
}
