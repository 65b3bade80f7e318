package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gestaotemplate/internal/utils/logger"

	"github.com/redis/go-redis/v9"
)

// Clima is the reshaped weather of a city.
type Clima struct {
	Cidade      string  `json:"cidade"`
	Temperatura float64 `json:"temperatura"`
	Umidade     int     `json:"umidade"`
	Descricao   string  `json:"descricao"`
}

// UpstreamError is a failed or unreachable weather provider call.
// StatusCode is the provider's status, or 502 when it could not be reached.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather upstream %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Cache stores raw weather responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a Cache on Redis.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

type ClimaConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// ClimaService proxies an OpenWeatherMap-compatible API.
type ClimaService struct {
	client *http.Client
	cfg    ClimaConfig
	cache  Cache
	logger *logger.Logger
}

// NewClimaService creates the weather proxy. cache may be nil.
func NewClimaService(cfg ClimaConfig, cache Cache) *ClimaService {
	return &ClimaService{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		cache:  cache,
		logger: logger.New("clima"),
	}
}

type owmResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Message string `json:"message"`
}

// Buscar returns the current weather of cidade.
func (s *ClimaService) Buscar(ctx context.Context, cidade string) (*Clima, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(cidade))

	if s.cache != nil {
		if b, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
			s.logger.Warn("Cache read failed for %s: %v", cacheKey, err)
		} else if ok {
			var clima Clima
			if err := json.Unmarshal(b, &clima); err == nil {
				return &clima, nil
			}
		}
	}

	clima, err := s.fetch(ctx, cidade)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cfg.CacheTTL > 0 {
		if b, err := json.Marshal(clima); err == nil {
			if err := s.cache.Set(ctx, cacheKey, b, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("Cache write failed for %s: %v", cacheKey, err)
			}
		}
	}
	return clima, nil
}

func (s *ClimaService) fetch(ctx context.Context, cidade string) (*Clima, error) {
	q := url.Values{}
	q.Set("q", cidade)
	q.Set("appid", s.cfg.APIKey)
	q.Set("units", "metric")
	q.Set("lang", "pt_br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Weather provider unreachable: %v", err)
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "Serviço de clima indisponível", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "Resposta inválida do serviço de clima", Err: err}
	}

	var payload owmResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode != http.StatusOK {
		msg := payload.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "Resposta inválida do serviço de clima", Err: decodeErr}
	}

	clima := &Clima{
		Cidade:      payload.Name,
		Temperatura: payload.Main.Temp,
		Umidade:     payload.Main.Humidity,
	}
	if len(payload.Weather) > 0 {
		clima.Descricao = payload.Weather[0].Description
	}
	return clima, nil
}
