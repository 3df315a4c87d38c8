// Package food ищет калорийность продуктов в Open Food Facts.
package food

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

// DefaultBaseURL адрес Open Food Facts
const DefaultBaseURL = "https://world.openfoodfacts.org"

type searchResponse struct {
	Products []struct {
		ProductName   string `json:"product_name"`
		ProductNameRu string `json:"product_name_ru"`
		Nutriments    struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// Client клиент поиска Open Food Facts
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент. Пустой baseURL означает DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// Lookup берёт первый найденный продукт. Name заполняется русским названием, если оно есть.
func (c *Client) Lookup(ctx context.Context, query string) (*entity.FoodInfo, error) {
	q := url.Values{}
	q.Set("search_terms", query)
	q.Set("json", "1")
	q.Set("page_size", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cgi/search.pl?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build food request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "fitbalance-bot/1.0")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("food request: %w: %v", entity.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read food response: %w: %v", entity.ErrUnavailable, err)
	}

	c.logger.Debug("food response",
		zap.String("request_id", requestID),
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food api status %d: %w", resp.StatusCode, entity.ErrUnavailable)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode food response: %w: %v", entity.ErrUnavailable, err)
	}
	if len(sr.Products) == 0 {
		return nil, fmt.Errorf("product %q: %w", query, entity.ErrNotFound)
	}

	product := sr.Products[0]
	if product.Nutriments.EnergyKcal100g <= 0 {
		return nil, fmt.Errorf("product %q has no energy data: %w", query, entity.ErrNotFound)
	}

	return &entity.FoodInfo{
		Name:        product.ProductNameRu,
		KcalPer100g: product.Nutriments.EnergyKcal100g,
	}, nil
}

var _ port.FoodLookup = (*Client)(nil)
