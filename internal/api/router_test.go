package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	app "fitbalance-bot/internal/application"
	"fitbalance-bot/internal/container"
	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/infrastructure/export"
	"fitbalance-bot/internal/infrastructure/storage"
	"fitbalance-bot/internal/metrics"
)

type stubWeather float64

func (w stubWeather) Temperature(ctx context.Context, city string) (float64, error) {
	return float64(w), nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return text, nil
}

type stubFood map[string]*entity.FoodInfo

func (f stubFood) Lookup(ctx context.Context, query string) (*entity.FoodInfo, error) {
	if info, ok := f[query]; ok {
		return info, nil
	}
	return nil, entity.ErrNotFound
}

type firstChooser struct{}

func (firstChooser) Intn(int) int { return 0 }

type harness struct {
	router  *Router
	metrics *metrics.Metrics
	repo    *storage.MemoryUserRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	repo := storage.NewMemoryUserRepository()
	c := container.New(container.Deps{
		Users:              repo,
		Weather:            stubWeather(20),
		Translator:         stubTranslator{},
		Food:               stubFood{"банан": {Name: "банан", KcalPer100g: 89}},
		Exporter:           export.NewXLSXExporter(),
		Chooser:            firstChooser{},
		DefaultTemperature: 20,
	})
	m := metrics.New(prometheus.NewRegistry())

	return &harness{router: NewRouter(c, m, nil), metrics: m, repo: repo}
}

func (h *harness) send(t *testing.T, userID int64, text string) *Reply {
	t.Helper()
	return h.router.Handle(context.Background(), Message{UserID: userID, ChatID: userID + 1000, Text: text})
}

func (h *harness) configure(t *testing.T, userID int64) {
	t.Helper()
	h.send(t, userID, "/set_profile male")
	for _, a := range []string{"70", "175", "30", "30"} {
		h.send(t, userID, a)
	}
	reply := h.send(t, userID, "Москва")
	require.True(t, reply.HTML)
	require.Contains(t, reply.Text, "Профиль сохранен")
}

func TestRouter_StartAndFAQ(t *testing.T) {
	h := newHarness(t)

	reply := h.send(t, 1, "/start")
	require.Equal(t, msgStart, reply.Text)
	require.Equal(t, int64(1001), reply.ChatID)
	require.False(t, reply.HTML)

	reply = h.send(t, 1, "/faq")
	require.Equal(t, msgFAQ, reply.Text)
	require.True(t, reply.HTML)
}

func TestRouter_SetupDialogue(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, msgAskWeight, h.send(t, 1, "/set_profile male").Text)
	require.Equal(t, msgBadWeight, h.send(t, 1, "семьдесят").Text)
	require.Equal(t, msgAskHeight, h.send(t, 1, "70").Text)
	require.Equal(t, msgBadHeight, h.send(t, 1, "0").Text)
	require.Equal(t, msgAskAge, h.send(t, 1, "175").Text)
	require.Equal(t, msgAskActivity, h.send(t, 1, "30").Text)
	require.Equal(t, msgBadActivity, h.send(t, 1, "-1").Text)
	require.Equal(t, msgAskCity, h.send(t, 1, "30").Text)
	require.Equal(t, msgBadCity, h.send(t, 1, "   ").Text)

	reply := h.send(t, 1, "Москва")
	require.True(t, reply.HTML)
	require.Contains(t, reply.Text, "Дневная норма воды: 2600 мл")
	require.Contains(t, reply.Text, "Дневная норма калорий: 2060 ккал")

	require.Equal(t, 1.0, testutil.ToFloat64(h.metrics.SetupsCompleted))
	require.Equal(t, 4.0, testutil.ToFloat64(h.metrics.ErrorsTotal.WithLabelValues("validation")))
	require.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ProfilesTotal))
}

func TestRouter_PlainTextWithoutFlowIsIgnored(t *testing.T) {
	h := newHarness(t)
	require.Nil(t, h.send(t, 1, "привет"))

	h.configure(t, 1)
	require.Nil(t, h.send(t, 1, "500"))
}

func TestRouter_CommandsRequireProfile(t *testing.T) {
	h := newHarness(t)

	for _, cmd := range []string{"/log_water abc", "/log_food", "/log_workout", "/check_progress", "/recommend", "/export"} {
		require.Equal(t, msgProfileRequired, h.send(t, 1, cmd).Text, cmd)
	}
}

func TestRouter_CommandsAreCaseSensitive(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, msgUnknownCommand, h.send(t, 1, "/Start").Text)
	require.Equal(t, msgStart, h.send(t, 1, "/start@FitBalanceBot").Text)
}

func TestRouter_LogWater(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)

	reply := h.send(t, 1, "/log_water 500")
	require.Equal(t, "💧 +500 мл воды!\n📊 Прогресс: 500/2600 мл\n⏳ Осталось: 2100 мл", reply.Text)

	require.Equal(t, msgBadWater, h.send(t, 1, "/log_water -5").Text)
	require.Equal(t, msgBadWater, h.send(t, 1, "/log_water abc").Text)
	require.Equal(t, msgBadWater, h.send(t, 1, "/log_water").Text)

	user, err := h.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 500, user.LoggedWaterMl)
}

func TestRouter_FoodFlow(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)

	require.Equal(t, formatFoodError(msgNoProduct), h.send(t, 1, "/log_food").Text)
	require.Equal(t, formatFoodError(msgProductNotFound), h.send(t, 1, "/log_food кирпич").Text)

	reply := h.send(t, 1, "/log_food банан")
	require.Equal(t, "🍎 Банан\n🔢 Калорийность: 89 ккал/100г\n📏 Сколько грамм вы съели?", reply.Text)
	require.False(t, reply.HTML)

	require.Equal(t, msgBadGrams, h.send(t, 1, "много").Text)

	reply = h.send(t, 1, "150")
	require.Equal(t, "🍽 Съедено: 150г\n🔥 Записано: 133.5 ккал\n📊 Всего: 133.5/2060 ккал", reply.Text)

	require.Nil(t, h.send(t, 1, "150"))
}

func TestRouter_SetupTakesPrecedenceOverPendingFood(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)
	h.send(t, 1, "/log_food банан")

	require.Equal(t, msgAskWeight, h.send(t, 1, "/set_profile").Text)
	require.Equal(t, msgAskHeight, h.send(t, 1, "80").Text)

	user, err := h.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 80, user.WeightKg)
	require.Nil(t, user.PendingFood)
	require.Zero(t, user.LoggedCalories)
}

func TestRouter_LogWorkout(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)

	reply := h.send(t, 1, "/log_workout бег 30")
	require.Equal(t, "🏋️ Бег 30 минут\n🔥 Сожжено: 240 ккал\n💦 Рекомендуется воды: +200 мл\n📈 Новая норма воды: 2800 мл", reply.Text)

	require.Equal(t, msgBadWorkout, h.send(t, 1, "/log_workout бег").Text)
	require.Equal(t, msgBadWorkout, h.send(t, 1, "/log_workout бег много").Text)
	require.Equal(t, msgBadWorkout, h.send(t, 1, "/log_workout бег 2000000000000000000").Text)

	user, err := h.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 240, user.BurnedCalories)
}

func TestRouter_CheckProgress(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)
	h.send(t, 1, "/log_water 600")
	h.send(t, 1, "/log_workout плавание 60")

	reply := h.send(t, 1, "/check_progress")
	require.True(t, reply.HTML)
	require.Contains(t, reply.Text, "Ваш прогресс за "+time.Now().Format("02.01.2006"))
	require.Contains(t, reply.Text, "• Выпито: 600 мл из 3000 мл")
	require.Contains(t, reply.Text, "• Осталось: 2400 мл")
	require.Contains(t, reply.Text, "• Потреблено: 0.0 ккал")
	require.Contains(t, reply.Text, "• Сожжено: 480 ккал")
	require.Contains(t, reply.Text, "• Баланс: 2540.0/2060 ккал")
}

func TestRouter_Recommend(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)

	reply := h.send(t, 1, "/recommend")
	require.True(t, reply.HTML)
	require.Contains(t, reply.Text, "Огурец (15 ккал/100г)")
	require.Contains(t, reply.Text, "Йога (30 мин) - 150 ккал")
	require.Contains(t, reply.Text, "Текущий баланс: 2060.0 ккал")
}

func TestRouter_Cancel(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, msgNothingToCancel, h.send(t, 1, "/cancel").Text)

	h.send(t, 1, "/set_profile")
	require.Equal(t, msgCancelledSetup, h.send(t, 1, "/cancel").Text)
	require.Nil(t, h.send(t, 1, "70"))

	h.configure(t, 1)
	h.send(t, 1, "/log_food банан")
	require.Equal(t, msgCancelledFood, h.send(t, 1, "/cancel").Text)
	require.Nil(t, h.send(t, 1, "100"))
}

func TestRouter_Export(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)

	require.Equal(t, msgExportEmpty, h.send(t, 1, "/export").Text)

	h.send(t, 1, "/log_water 250")
	reply := h.send(t, 1, "/export")
	require.NotNil(t, reply.Document)
	require.Equal(t, exportFileName, reply.Document.Name)
	require.NotEmpty(t, reply.Document.Data)
}

func TestRouter_UsersAreIndependent(t *testing.T) {
	h := newHarness(t)
	h.configure(t, 1)
	h.send(t, 2, "/set_profile female")

	h.send(t, 1, "/log_water 300")
	require.Equal(t, msgAskHeight, h.send(t, 2, "55").Text)
	require.Equal(t, msgProfileRequired, h.send(t, 2, "/log_water 100").Text)

	u1, err := h.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 300, u1.LoggedWaterMl)
}

func TestParseCommand(t *testing.T) {
	cmd, args, ok := parseCommand("  /log_workout  силовая тренировка 45 ")
	require.True(t, ok)
	require.Equal(t, "log_workout", cmd)
	require.Equal(t, []string{"силовая", "тренировка", "45"}, args)

	_, _, ok = parseCommand("70")
	require.False(t, ok)
	_, _, ok = parseCommand("")
	require.False(t, ok)
}

func TestFormatRecommendation_EscapesHTML(t *testing.T) {
	out := formatRecommendation(&app.Recommendation{
		Food:    entity.CatalogFood{Name: "Тофу <сырой>", Calories: 76},
		Workout: "Скакалка & прыжки",
		Balance: 120,
	})
	require.True(t, strings.Contains(out, "Тофу &lt;сырой&gt; (76 ккал/100г)"))
	require.True(t, strings.Contains(out, "Скакалка &amp; прыжки"))
}
