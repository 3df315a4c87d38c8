package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"fitbalance-bot/internal/domain/entity"
)

// ErrMissingToken токен бота не задан
var ErrMissingToken = errors.New("TELEGRAM_TOKEN is required")

type Config struct {
	Telegram        TelegramConfig        `yaml:"telegram"`
	Weather         WeatherConfig         `yaml:"weather"`
	Food            FoodConfig            `yaml:"food"`
	Translate       TranslateConfig       `yaml:"translate"`
	HTTP            HTTPConfig            `yaml:"http"`
	Redis           RedisConfig           `yaml:"redis"`
	Cache           CacheConfig           `yaml:"cache"`
	Monitoring      MonitoringConfig      `yaml:"monitoring"`
	Log             LogConfig             `yaml:"log"`
	Recommendations RecommendationsConfig `yaml:"recommendations"`
}

type TelegramConfig struct {
	Token string `yaml:"token"`
	Debug bool   `yaml:"debug"`
}

type WeatherConfig struct {
	APIKey             string  `yaml:"api_key"`
	BaseURL            string  `yaml:"base_url"`
	DefaultTemperature float64 `yaml:"default_temperature"`
}

type FoodConfig struct {
	BaseURL string `yaml:"base_url"`
}

type TranslateConfig struct {
	BaseURL string `yaml:"base_url"`
	Source  string `yaml:"source"`
	Target  string `yaml:"target"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type MonitoringConfig struct {
	MetricsAddr string `yaml:"metrics_addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// RecommendationsConfig переопределяет списки рекомендаций. Уровни тренировок: low, medium, high.
type RecommendationsConfig struct {
	Foods    []entity.CatalogFood `yaml:"foods"`
	Workouts map[string][]string  `yaml:"workouts"`
}

// Default конфигурация без файла и переменных окружения
func Default() *Config {
	return &Config{
		Weather:    WeatherConfig{DefaultTemperature: 20.0},
		Translate:  TranslateConfig{Source: "ru", Target: "en"},
		HTTP:       HTTPConfig{Timeout: 10 * time.Second},
		Cache:      CacheConfig{TTL: 24 * time.Hour},
		Monitoring: MonitoringConfig{MetricsAddr: ":9090"},
		Log:        LogConfig{Level: "info"},
	}
}

// Load читает .env, затем YAML-файл (если путь задан) и переменные окружения.
// Пустой path означает CONFIG_PATH.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		// Подставляем переменные окружения в YAML
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Address = v
	}
	if v, ok := os.LookupEnv("METRICS_ADDR"); ok {
		c.Monitoring.MetricsAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return ErrMissingToken
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

// Catalog собирает каталог рекомендаций: стандартные списки, поверх которых лежат заданные в конфиге
func (c *Config) Catalog() entity.Catalog {
	catalog := entity.DefaultCatalog()
	if len(c.Recommendations.Foods) > 0 {
		catalog.Foods = c.Recommendations.Foods
	}
	for level, workouts := range c.Recommendations.Workouts {
		intensity := entity.Intensity(strings.ToLower(level))
		if _, ok := catalog.Workouts[intensity]; ok && len(workouts) > 0 {
			catalog.Workouts[intensity] = workouts
		}
	}
	return catalog
}
