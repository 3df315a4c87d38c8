package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitbalance-bot/internal/domain/entity"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TELEGRAM_TOKEN", "OPENWEATHER_API_KEY", "REDIS_ADDR", "LOG_LEVEL", "CONFIG_PATH"} {
		t.Setenv(key, "")
	}
	// METRICS_ADDR различает пустое значение и отсутствие переменной
	t.Setenv("METRICS_ADDR", "")
	require.NoError(t, os.Unsetenv("METRICS_ADDR"))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.ErrorIs(t, cfg.Validate(), ErrMissingToken)
}

func TestLoad_YAMLWithEnvExpansion(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("FB_SECRET", "secret-token")

	path := writeConfig(t, `
telegram:
  token: ${FB_SECRET}
  debug: true
weather:
  api_key: owm
  default_temperature: 15.5
http:
  timeout: 3s
redis:
  address: localhost:6379
  db: 2
cache:
  ttl: 1h
monitoring:
  metrics_addr: ":9100"
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "secret-token", cfg.Telegram.Token)
	require.True(t, cfg.Telegram.Debug)
	require.Equal(t, "owm", cfg.Weather.APIKey)
	require.Equal(t, 15.5, cfg.Weather.DefaultTemperature)
	require.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	require.Equal(t, "localhost:6379", cfg.Redis.Address)
	require.Equal(t, 2, cfg.Redis.DB)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.Equal(t, ":9100", cfg.Monitoring.MetricsAddr)
	require.Equal(t, "debug", cfg.Log.Level)

	// Не заданные в файле значения остаются по умолчанию
	require.Equal(t, "ru", cfg.Translate.Source)
	require.Equal(t, "en", cfg.Translate.Target)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	path := writeConfig(t, `
telegram:
  token: from-file
redis:
  address: file:6379
`)
	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Telegram.Token)
	require.Equal(t, "env:6379", cfg.Redis.Address)
	require.Empty(t, cfg.Monitoring.MetricsAddr)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "telegram: [unclosed"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Telegram.Token = "   "
	require.ErrorIs(t, cfg.Validate(), ErrMissingToken)

	cfg.Telegram.Token = "token"
	require.NoError(t, cfg.Validate())

	cfg.HTTP.Timeout = 0
	require.Error(t, cfg.Validate())
}

func TestCatalog(t *testing.T) {
	cfg := Default()
	require.Equal(t, entity.DefaultCatalog(), cfg.Catalog())

	cfg.Recommendations = RecommendationsConfig{
		Foods:    []entity.CatalogFood{{Name: "Сельдерей", Calories: 16}},
		Workouts: map[string][]string{"HIGH": {"Спринт"}, "extreme": {"Марафон"}},
	}

	catalog := cfg.Catalog()
	require.True(t, catalog.Valid())
	require.Equal(t, []entity.CatalogFood{{Name: "Сельдерей", Calories: 16}}, catalog.Foods)
	require.Equal(t, []string{"Спринт"}, catalog.Workouts[entity.IntensityHigh])
	require.Equal(t, entity.DefaultCatalog().Workouts[entity.IntensityLow], catalog.Workouts[entity.IntensityLow])
	require.NotContains(t, catalog.Workouts, entity.Intensity("extreme"))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
