package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

// DefaultTemperature температура, если погоду узнать не удалось
const DefaultTemperature = 20.0

// CancelResult что именно отменила команда /cancel
type CancelResult int

const (
	CancelNothing CancelResult = iota
	CancelSetup
	CancelFood
)

// UserService ведёт диалог настройки профиля
type UserService struct {
	repo        port.UserRepository
	weather     port.WeatherProvider
	defaultTemp float64
	logger      *zap.Logger
}

// NewUserService создаёт сервис профилей. weather может быть nil, тогда всегда берётся defaultTemp.
func NewUserService(repo port.UserRepository, weather port.WeatherProvider, defaultTemp float64, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		repo:        repo,
		weather:     weather,
		defaultTemp: defaultTemp,
		logger:      logger,
	}
}

// Get возвращает профиль или entity.ErrProfileNotFound
func (s *UserService) Get(ctx context.Context, userID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID)
}

// Count количество профилей
func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Save сохраняет профиль
func (s *UserService) Save(ctx context.Context, user *entity.User) error {
	return s.repo.Save(ctx, user)
}

// BeginSetup начинает настройку заново: прежние данные и итоги отбрасываются.
func (s *UserService) BeginSetup(ctx context.Context, userID, chatID int64, gender entity.Gender) (*entity.User, error) {
	user := entity.NewUser(userID, chatID, gender)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", userID, err)
	}
	return user, nil
}

// Answer принимает ответ на текущий шаг настройки.
// При ошибке проверки шаг не меняется и профиль не сохраняется.
func (s *UserService) Answer(ctx context.Context, user *entity.User, text string) (*entity.User, error) {
	user = user.Clone()

	switch user.State {
	case entity.StateAwaitingWeight:
		v, err := parseInt(text, entity.FieldWeight)
		if err != nil {
			return nil, err
		}
		user.WeightKg = v

	case entity.StateAwaitingHeight:
		v, err := parseInt(text, entity.FieldHeight)
		if err != nil {
			return nil, err
		}
		user.HeightCm = v

	case entity.StateAwaitingAge:
		v, err := parseInt(text, entity.FieldAge)
		if err != nil {
			return nil, err
		}
		user.AgeYears = v

	case entity.StateAwaitingActivity:
		v, err := parseInt(text, entity.FieldActivity)
		if err != nil {
			return nil, err
		}
		user.ActivityMinutes = v

	case entity.StateAwaitingCity:
		city := strings.TrimSpace(text)
		if city == "" {
			return nil, entity.InvalidField(entity.FieldCity, text)
		}
		user.CompleteSetup(city, s.temperature(ctx, city))

	case entity.StateNone:
		return nil, fmt.Errorf("profile %d is not in setup: %w", user.ID, entity.ErrValidation)

	default:
		return nil, fmt.Errorf("profile %d: unknown dialogue state %q", user.ID, user.State)
	}

	if user.InSetup() {
		user.SetState(user.State.Next())
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", user.ID, err)
	}

	if user.Active() {
		s.logger.Info("profile configured",
			zap.Int64("user_id", user.ID),
			zap.String("city", user.City),
			zap.Int("water_goal", user.WaterGoalMl),
			zap.Int("calorie_goal", user.CalorieGoalKcal),
		)
	}

	return user, nil
}

// Cancel прерывает незавершённую настройку или ожидание граммов.
func (s *UserService) Cancel(ctx context.Context, userID int64) (CancelResult, error) {
	user, err := s.repo.Get(ctx, userID)
	if errors.Is(err, entity.ErrProfileNotFound) {
		return CancelNothing, nil
	}
	if err != nil {
		return CancelNothing, err
	}

	switch {
	case user.InSetup():
		return CancelSetup, s.repo.Delete(ctx, userID)
	case user.PendingFood != nil:
		user.PendingFood = nil
		return CancelFood, s.repo.Save(ctx, user)
	default:
		return CancelNothing, nil
	}
}

// temperature узнаёт погоду, ошибки не выходят наружу
func (s *UserService) temperature(ctx context.Context, city string) float64 {
	if s.weather == nil {
		return s.defaultTemp
	}

	temp, err := s.weather.Temperature(ctx, city)
	if err != nil {
		s.logger.Warn("weather lookup failed, using default",
			zap.String("city", city),
			zap.Float64("default", s.defaultTemp),
			zap.Error(err),
		)
		return s.defaultTemp
	}

	return temp
}

// parseInt разбирает целое в границах поля
func parseInt(text string, field entity.Field) (int, error) {
	limits, ok := field.Limits()
	if !ok {
		return 0, fmt.Errorf("no limits for field %s", field)
	}
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || !limits.Contains(v) {
		return 0, entity.InvalidField(field, text)
	}
	return v, nil
}
