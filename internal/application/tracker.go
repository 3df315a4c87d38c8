package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

// WaterResult итог записи воды
type WaterResult struct {
	Amount int
	User   *entity.User
}

// FoodPrompt найденный продукт, для которого ждём количество грамм
type FoodPrompt struct {
	Name        string
	KcalPer100g float64
}

// FoodResult итог записи съеденного
type FoodResult struct {
	Grams    int
	Calories float64
	User     *entity.User
}

// WorkoutResult итог записи тренировки
type WorkoutResult struct {
	Type       string
	Minutes    int
	Burned     int
	WaterBonus int
	User       *entity.User
}

// Progress сводка за день
type Progress struct {
	Date           time.Time
	User           *entity.User
	WaterRemaining int
	CalorieBalance float64
}

// Recommendation персональная рекомендация
type Recommendation struct {
	Food      entity.CatalogFood
	Workout   string
	Intensity entity.Intensity
	Balance   float64
}

// TrackerOption настройка TrackerService
type TrackerOption func(*TrackerService)

// WithChooser задаёт источник случайности для рекомендаций
func WithChooser(c port.Chooser) TrackerOption {
	return func(s *TrackerService) { s.chooser = c }
}

// WithCatalog задаёт списки продуктов и тренировок
func WithCatalog(c entity.Catalog) TrackerOption {
	return func(s *TrackerService) { s.catalog = c }
}

// WithLanguages задаёт языки перевода названия продукта
func WithLanguages(source, target string) TrackerOption {
	return func(s *TrackerService) { s.sourceLang, s.targetLang = source, target }
}

// WithClock подменяет текущее время
func WithClock(now func() time.Time) TrackerOption {
	return func(s *TrackerService) { s.now = now }
}

// WithLogger задаёт логгер
func WithLogger(l *zap.Logger) TrackerOption {
	return func(s *TrackerService) { s.logger = l }
}

// TrackerService обрабатывает команды учёта воды, еды и тренировок
type TrackerService struct {
	users      *UserService
	translator port.Translator
	food       port.FoodLookup
	exporter   port.EventExporter
	chooser    port.Chooser
	catalog    entity.Catalog
	sourceLang string
	targetLang string
	now        func() time.Time
	logger     *zap.Logger
}

// NewTrackerService создаёт сервис команд
func NewTrackerService(users *UserService, translator port.Translator, food port.FoodLookup, exporter port.EventExporter, opts ...TrackerOption) *TrackerService {
	s := &TrackerService{
		users:      users,
		translator: translator,
		food:       food,
		exporter:   exporter,
		chooser:    randomChooser{},
		catalog:    entity.DefaultCatalog(),
		sourceLang: "ru",
		targetLang: "en",
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogWater добавляет выпитую воду: /log_water <мл>
func (s *TrackerService) LogWater(ctx context.Context, userID int64, args []string) (*WaterResult, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return nil, entity.InvalidField(entity.FieldWater, "")
	}
	amount, err := parseInt(args[0], entity.FieldWater)
	if err != nil {
		return nil, err
	}

	user.AddWater(amount, s.now())
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", userID, err)
	}

	return &WaterResult{Amount: amount, User: user}, nil
}

// LogFood ищет продукт и запоминает его калорийность до ответа с граммами: /log_food <название>
func (s *TrackerService) LogFood(ctx context.Context, userID int64, args []string) (*FoodPrompt, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := strings.Join(args, " ")
	if product == "" {
		return nil, entity.InvalidField(entity.FieldProduct, "")
	}

	query := product
	if s.translator != nil {
		query, err = s.translator.Translate(ctx, product, s.sourceLang, s.targetLang)
		if err != nil {
			return nil, lookupError("translate", product, err)
		}
	}

	info, err := s.food.Lookup(ctx, query)
	if err != nil {
		return nil, lookupError("food lookup", query, err)
	}
	if info.KcalPer100g <= 0 {
		return nil, fmt.Errorf("food lookup %q: no energy data: %w", query, entity.ErrNotFound)
	}

	name := info.Name
	if name == "" {
		name = product
	}
	name = capitalize(name)

	user.PendingFood = &entity.PendingFood{Name: name, KcalPer100g: info.KcalPer100g}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", userID, err)
	}

	s.logger.Debug("food found",
		zap.Int64("user_id", userID),
		zap.String("query", query),
		zap.Float64("kcal_per_100g", info.KcalPer100g),
	)

	return &FoodPrompt{Name: name, KcalPer100g: info.KcalPer100g}, nil
}

// LogFoodQuantity принимает количество грамм для ранее найденного продукта
func (s *TrackerService) LogFoodQuantity(ctx context.Context, userID int64, text string) (*FoodResult, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PendingFood == nil {
		return nil, fmt.Errorf("profile %d has no pending food: %w", userID, entity.ErrValidation)
	}

	grams, err := parseInt(text, entity.FieldGrams)
	if err != nil {
		return nil, err
	}

	info := entity.FoodInfo{Name: user.PendingFood.Name, KcalPer100g: user.PendingFood.KcalPer100g}
	calories := info.CaloriesFor(grams)

	user.AddCalories(calories, s.now())
	user.PendingFood = nil
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", userID, err)
	}

	return &FoodResult{Grams: grams, Calories: calories, User: user}, nil
}

// LogWorkout записывает тренировку: /log_workout <тип...> <минуты>
func (s *TrackerService) LogWorkout(ctx context.Context, userID int64, args []string) (*WorkoutResult, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(args) < 2 {
		return nil, entity.InvalidField(entity.FieldWorkout, strings.Join(args, " "))
	}
	minutes, err := parseInt(args[len(args)-1], entity.FieldWorkout)
	if err != nil {
		return nil, err
	}
	kind := strings.Join(args[:len(args)-1], " ")

	burned, bonus := user.AddWorkout(minutes, s.now())
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", userID, err)
	}

	return &WorkoutResult{
		Type:       capitalize(kind),
		Minutes:    minutes,
		Burned:     burned,
		WaterBonus: bonus,
		User:       user,
	}, nil
}

// Progress возвращает сводку, профиль не меняется
func (s *TrackerService) Progress(ctx context.Context, userID int64) (*Progress, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Progress{
		Date:           s.now(),
		User:           user,
		WaterRemaining: user.WaterRemaining(),
		CalorieBalance: user.CalorieBalance(),
	}, nil
}

// Recommend подбирает продукт и тренировку по остатку калорий, профиль не меняется
func (s *TrackerService) Recommend(ctx context.Context, userID int64) (*Recommendation, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := user.IntakeBalance()
	intensity := entity.IntensityFor(balance)
	workouts := s.catalog.Workouts[intensity]

	return &Recommendation{
		Food:      s.catalog.Foods[s.chooser.Intn(len(s.catalog.Foods))],
		Workout:   workouts[s.chooser.Intn(len(workouts))],
		Intensity: intensity,
		Balance:   balance,
	}, nil
}

// Export выгружает журнал событий. Пустой журнал даёт nil без ошибки.
func (s *TrackerService) Export(ctx context.Context, userID int64) ([]byte, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Events) == 0 || s.exporter == nil {
		return nil, nil
	}

	data, err := s.exporter.Export(user.Events)
	if err != nil {
		return nil, fmt.Errorf("export events of %d: %w", userID, err)
	}
	return data, nil
}

// activeUser возвращает настроенный профиль или entity.ErrProfileRequired
func (s *TrackerService) activeUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, entity.ErrProfileNotFound) {
		return nil, entity.ErrProfileRequired
	}
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, entity.ErrProfileRequired
	}
	return user, nil
}

// lookupError сохраняет ErrNotFound, остальные ошибки сводит к ErrUnavailable
func lookupError(op, query string, err error) error {
	if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrUnavailable) {
		return fmt.Errorf("%s %q: %w", op, query, err)
	}
	return fmt.Errorf("%s %q: %w: %v", op, query, entity.ErrUnavailable, err)
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

type randomChooser struct{}

func (randomChooser) Intn(n int) int {
	return rand.Intn(n)
}
