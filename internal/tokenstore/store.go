// Package tokenstore реализует постоянное хранилище bearer-токена клиента.
//
// Токен хранится в обычном файле с правами 0600 и переживает перезапуски
// процесса. Запись выполняется через временный файл и rename, поэтому
// читатели никогда не видят частично записанное значение. Писатель один —
// сервис аутентификации; читает токен каждый исходящий запрос.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore хранит единственный токен в файле по заданному пути.
type FileStore struct {
	path string
}

// New создаёт FileStore. Файл и каталоги создаются лениво при первой записи.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Get возвращает сохранённый токен либо пустую строку, если токена нет.
func (s *FileStore) Get() (string, error) {
	const op = "tokenstore.Get"
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set сохраняет токен, заменяя предыдущее значение атомарно.
func (s *FileStore) Set(token string) error {
	const op = "tokenstore.Set"
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tmp.WriteString(token); err == nil {
		err = tmp.Chmod(0o600)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove удаляет сохранённый токен. Отсутствие файла ошибкой не считается.
func (s *FileStore) Remove() error {
	const op = "tokenstore.Remove"
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
