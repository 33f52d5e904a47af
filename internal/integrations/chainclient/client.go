package chainclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент шлюза блокчейна. Шлюз держит подключение к ноде и отдает
// события контракта бронирования по HTTP; сама нода - внешний collaborator
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetLatestBlock возвращает номер последнего блока
func (c *Client) GetLatestBlock(ctx context.Context) (uint64, error) {
	url := fmt.Sprintf("%s/v1/blocks/latest", c.baseURL)

	var resp latestBlockResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return 0, err
	}

	return resp.BlockNumber, nil
}

// GetEvents возвращает события контракта в диапазоне блоков [fromBlock, toBlock]
// в порядке возрастания номера блока (порядок внутри блока - порядок шлюза).
// Пустой список - нормальный результат, а не ошибка
func (c *Client) GetEvents(ctx context.Context, fromBlock, toBlock uint64) ([]domain.ChainEvent, error) {
	url := fmt.Sprintf("%s/v1/events?fromBlock=%d&toBlock=%d", c.baseURL, fromBlock, toBlock)

	var resp eventsResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	events := make([]domain.ChainEvent, 0, len(resp.Events))
	for _, e := range resp.Events {
		events = append(events, domain.ChainEvent{
			Name:        e.Event,
			BlockNumber: e.BlockNumber,
			BookingHash: e.ReturnValues.BookingHash,
			NewGuest:    e.ReturnValues.NewGuest,
		})
	}

	return events, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
