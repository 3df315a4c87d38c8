package container

import (
	"go.uber.org/zap"

	app "fitbalance-bot/internal/application"
	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

// Deps внешние зависимости сервисов
type Deps struct {
	Users              port.UserRepository
	Weather            port.WeatherProvider
	Translator         port.Translator
	Food               port.FoodLookup
	Exporter           port.EventExporter
	Chooser            port.Chooser
	Catalog            *entity.Catalog
	DefaultTemperature float64
	SourceLang         string
	TargetLang         string
	Logger             *zap.Logger
}

type Container struct {
	UserService    *app.UserService
	TrackerService *app.TrackerService
}

func New(d Deps) *Container {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	userService := app.NewUserService(d.Users, d.Weather, d.DefaultTemperature, logger.Named("profile"))

	opts := []app.TrackerOption{app.WithLogger(logger.Named("tracker"))}
	if d.Chooser != nil {
		opts = append(opts, app.WithChooser(d.Chooser))
	}
	if d.Catalog != nil && d.Catalog.Valid() {
		opts = append(opts, app.WithCatalog(*d.Catalog))
	}
	if d.SourceLang != "" && d.TargetLang != "" {
		opts = append(opts, app.WithLanguages(d.SourceLang, d.TargetLang))
	}
	trackerService := app.NewTrackerService(userService, d.Translator, d.Food, d.Exporter, opts...)

	return &Container{
		UserService:    userService,
		TrackerService: trackerService,
	}
}
