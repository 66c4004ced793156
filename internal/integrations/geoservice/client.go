package geoservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с GeoService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента GeoService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDistance получает расстояние от базы до адреса по почтовому индексу
func (c *Client) GetDistance(ctx context.Context, postcode string) (*Distance, error) {
	requestURL := fmt.Sprintf("%s/internal/distance?postcode=%s", c.baseURL, url.QueryEscape(postcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid postcode format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPostcodeNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var distance Distance
	if err := json.NewDecoder(resp.Body).Decode(&distance); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &distance, nil
}

// GetDistanceWithGracefulDegradation получает расстояние с graceful degradation
// При недоступности GeoService возвращает ErrServiceDegraded, что позволяет
// создать бронирование без надбавки за выезд
func (c *Client) GetDistanceWithGracefulDegradation(ctx context.Context, postcode string) (*Distance, error) {
	c.log.Info("Fetching distance for postcode=%s", postcode)

	distance, err := c.GetDistance(ctx, postcode)
	if err != nil {
		// Неизвестный индекс — бизнес-ошибка, пробрасываем её дальше
		if err == ErrPostcodeNotFound {
			c.log.Info("Postcode not found: %s", postcode)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("GeoService unavailable, applying graceful degradation for postcode=%s: %v", postcode, err)
		return nil, fmt.Errorf("%w: postcode=%s, error=%v", ErrServiceDegraded, postcode, err)
	}

	c.log.Info("Successfully fetched distance for postcode=%s, miles=%.1f", postcode, distance.Miles)
	return distance, nil
}
