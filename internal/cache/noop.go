package cache

import (
	"context"
	"time"
)

// Noop — заглушка кеша для конфигураций без Redis: никогда не находит
// значений и молча принимает записи.
type Noop struct{}

// Get всегда сообщает об отсутствии значения.
func (Noop) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }

// Set ничего не сохраняет.
func (Noop) Set(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }

// Invalidate ничего не делает.
func (Noop) Invalidate(_ context.Context, _ string) error { return nil }
