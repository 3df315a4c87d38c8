// Package weather получает текущую температуру в городе через OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

// DefaultBaseURL адрес API OpenWeatherMap
const DefaultBaseURL = "https://api.openweathermap.org"

type weatherResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Message string `json:"message"`
}

// Client клиент OpenWeatherMap
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент. Пустой baseURL означает DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Temperature возвращает температуру в градусах Цельсия
func (c *Client) Temperature(ctx context.Context, city string) (float64, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build weather request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weather request: %w: %v", entity.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read weather response: %w: %v", entity.ErrUnavailable, err)
	}

	c.logger.Debug("weather response",
		zap.String("request_id", requestID),
		zap.String("city", city),
		zap.Int("status", resp.StatusCode),
	)

	var wr weatherResponse
	if resp.StatusCode != http.StatusOK {
		_ = json.Unmarshal(body, &wr)
		return 0, fmt.Errorf("weather api status %d %q: %w", resp.StatusCode, wr.Message, entity.ErrUnavailable)
	}
	if err := json.Unmarshal(body, &wr); err != nil {
		return 0, fmt.Errorf("decode weather response: %w: %v", entity.ErrUnavailable, err)
	}
	if wr.Main.Temp == nil {
		return 0, fmt.Errorf("weather response without temperature: %w", entity.ErrUnavailable)
	}

	return *wr.Main.Temp, nil
}

var _ port.WeatherProvider = (*Client)(nil)
