package port

import (
	"context"

	"fitbalance-bot/internal/domain/entity"
)

// UserRepository интерфейс хранилища профилей
type UserRepository interface {
	// Get возвращает копию профиля или entity.ErrProfileNotFound
	Get(ctx context.Context, userID int64) (*entity.User, error)

	// Save сохраняет профиль целиком
	Save(ctx context.Context, user *entity.User) error

	// Delete удаляет профиль
	Delete(ctx context.Context, userID int64) error

	// Count возвращает количество профилей
	Count(ctx context.Context) (int, error)
}
