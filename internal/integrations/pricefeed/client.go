package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ключ кэша спотовой цены
const cacheKey = "pricefeed:eth_eur"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// priceResponse ответ фида со спотовой ценой
type priceResponse struct {
	Price float64 `json:"price"`
}

// Client клиент спотовой цены ETH/EUR с кэшем в Redis.
// Курс меняется медленнее интервала опроса, поэтому закэшированное
// значение с коротким TTL снимает нагрузку с внешнего фида.
// Redis может отсутствовать (nil client) - тогда каждый запрос идет в фид
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента спотовой цены
// cache может быть nil: кэширование в этом случае отключено
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetSpotPrice возвращает текущую спотовую цену ETH/EUR.
// Сначала пробует кэш; промах или недоступность Redis ведут к прямому
// запросу фида (graceful degradation, ошибки кэша только логируются)
func (c *Client) GetSpotPrice(ctx context.Context) (float64, error) {
	if price, ok := c.fromCache(ctx); ok {
		return price, nil
	}

	price, err := c.fetch(ctx)
	if err != nil {
		return 0, err
	}

	c.toCache(ctx, price)
	return price, nil
}

func (c *Client) fetch(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/v1/prices/eth-eur", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if payload.Price <= 0 {
		return 0, fmt.Errorf("%w: got %f", ErrInvalidPrice, payload.Price)
	}

	return payload.Price, nil
}

func (c *Client) fromCache(ctx context.Context) (float64, bool) {
	if c.cache == nil {
		return 0, false
	}

	raw, err := c.cache.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("pricefeed: cache read failed, falling back to direct fetch: %v", err)
		return 0, false
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		c.log.Warn("pricefeed: corrupt cache entry %q, falling back to direct fetch", raw)
		return 0, false
	}

	return price, true
}

func (c *Client) toCache(ctx context.Context, price float64) {
	if c.cache == nil {
		return
	}

	raw := strconv.FormatFloat(price, 'f', -1, 64)
	if err := c.cache.Set(ctx, cacheKey, raw, c.cacheTTL).Err(); err != nil {
		c.log.Warn("pricefeed: cache write failed: %v", err)
	}
}
