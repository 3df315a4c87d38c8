package port

import "fitbalance-bot/internal/domain/entity"

// EventExporter выгружает журнал событий в файл
type EventExporter interface {
	Export(events []entity.Event) ([]byte, error)
}
