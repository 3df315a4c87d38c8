package port

import (
	"context"

	"fitbalance-bot/internal/domain/entity"
)

// WeatherProvider источник текущей температуры в городе
type WeatherProvider interface {
	Temperature(ctx context.Context, city string) (float64, error)
}

// Translator переводчик названий продуктов
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// FoodLookup поиск калорийности продукта на 100 г
type FoodLookup interface {
	// Lookup возвращает entity.ErrNotFound, если продукт не найден или нет данных о калориях
	Lookup(ctx context.Context, query string) (*entity.FoodInfo, error)
}

// LookupCache кэш результатов поиска продуктов
type LookupCache interface {
	Get(ctx context.Context, key string) (*entity.FoodInfo, bool, error)
	Set(ctx context.Context, key string, info *entity.FoodInfo) error
}
