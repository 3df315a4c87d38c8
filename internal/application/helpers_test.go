package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/infrastructure/storage"
)

type fakeWeather struct {
	temp  float64
	err   error
	calls int
}

func (f *fakeWeather) Temperature(ctx context.Context, city string) (float64, error) {
	f.calls++
	return f.temp, f.err
}

type fakeTranslator struct {
	err error
}

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "en:" + text, nil
}

type fakeFood map[string]*entity.FoodInfo

func (f fakeFood) Lookup(ctx context.Context, query string) (*entity.FoodInfo, error) {
	info, ok := f[query]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return info, nil
}

type fixedChooser int

func (c fixedChooser) Intn(n int) int {
	return int(c) % n
}

type fakeExporter struct{}

func (fakeExporter) Export(events []entity.Event) ([]byte, error) {
	return []byte{byte(len(events))}, nil
}

var errBoom = errors.New("boom")

var (
	testNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	testDay = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	users   *UserService
	tracker *TrackerService
	weather *fakeWeather
	trans   *fakeTranslator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := storage.NewMemoryUserRepository()
	weather := &fakeWeather{temp: 20}
	trans := &fakeTranslator{}
	users := NewUserService(repo, weather, DefaultTemperature, nil)
	food := fakeFood{
		"en:банан":  {Name: "банан", KcalPer100g: 89},
		"en:яблоко": {KcalPer100g: 52},
		"en:вода":   {Name: "Вода", KcalPer100g: 0},
	}
	tracker := NewTrackerService(users, trans, food, fakeExporter{},
		WithChooser(fixedChooser(0)),
		WithClock(func() time.Time { return testNow }),
	)

	return &fixture{users: users, tracker: tracker, weather: weather, trans: trans}
}

// setup проходит диалог настройки целиком
func (f *fixture) setup(t *testing.T, userID int64, gender entity.Gender, answers ...string) *entity.User {
	t.Helper()
	ctx := context.Background()

	user, err := f.users.BeginSetup(ctx, userID, userID*10, gender)
	require.NoError(t, err)
	for _, a := range answers {
		user, err = f.users.Answer(ctx, user, a)
		require.NoError(t, err)
	}
	return user
}

func (f *fixture) reference(t *testing.T, userID int64) *entity.User {
	t.Helper()
	return f.setup(t, userID, entity.GenderMale, "70", "175", "30", "30", "Москва")
}
