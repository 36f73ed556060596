package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-cli/internal/model"
)

// Custom error types
var (
	ErrRetrievalFailure = errors.New("weather retrieval failed")
	ErrAPIKeyMissing    = fmt.Errorf("%w: API key missing", ErrRetrievalFailure)
	ErrUnauthorized     = fmt.Errorf("%w: API key rejected", ErrRetrievalFailure)
	ErrLocationNotFound = fmt.Errorf("%w: location not found", ErrRetrievalFailure)
	ErrExternalAPI      = fmt.Errorf("%w: external API error", ErrRetrievalFailure)
)

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetWeather(ctx context.Context, lat, lon float64, apiKey string) (*model.WeatherSnapshot, error)
}

// redisClient is the part of the go-redis client the repository needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// Options configures a weather repository. A nil Cache disables caching.
type Options struct {
	BaseURL         string
	HTTPClient      *http.Client
	Cache           redisClient
	CacheExpiration time.Duration
	Logger          *zap.SugaredLogger
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	baseURL         string
	httpClient      *http.Client
	redisClient     redisClient
	cacheExpiration time.Duration
	logger          *zap.SugaredLogger
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(opts Options) WeatherRepository {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	repo := &weatherRepository{
		baseURL:         opts.BaseURL,
		httpClient:      client,
		cacheExpiration: opts.CacheExpiration,
		logger:          logger,
	}
	// Keep a typed nil *redis.Client from turning into a non-nil interface.
	if c, ok := opts.Cache.(*redisv9.Client); !ok || c != nil {
		repo.redisClient = opts.Cache
	}
	return repo
}

// GetWeather retrieves weather data, checking cache first, then external API
func (r *weatherRepository) GetWeather(ctx context.Context, lat, lon float64, apiKey string) (*model.WeatherSnapshot, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	if cached, err := r.getFromCache(ctx, lat, lon, apiKey); err == nil {
		r.logger.Debugw("Weather cache hit", "lat", lat, "lon", lon)
		return cached, nil
	}

	weather, err := r.fetchFromExternalAPI(ctx, lat, lon, apiKey)
	if err != nil {
		return nil, err
	}

	r.cacheWeather(ctx, lat, lon, apiKey, weather)

	return weather, nil
}

// cacheKey scopes entries to a digest of the API key, so a rejected key never
// reads what a valid one cached.
func cacheKey(lat, lon float64, apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return "weather:" + strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64) +
		":" + hex.EncodeToString(sum[:8])
}

// getFromCache retrieves weather data from Redis cache
func (r *weatherRepository) getFromCache(ctx context.Context, lat, lon float64, apiKey string) (*model.WeatherSnapshot, error) {
	if r.redisClient == nil {
		return nil, redisv9.Nil
	}

	val, err := r.redisClient.Get(ctx, cacheKey(lat, lon, apiKey)).Result()
	if err != nil {
		if !errors.Is(err, redisv9.Nil) {
			r.logger.Warnw("Weather cache read failed", "error", err)
		}
		return nil, err
	}

	var weather model.WeatherSnapshot
	if err := json.Unmarshal([]byte(val), &weather); err != nil {
		r.logger.Warnw("Discarding unreadable cache entry", "key", cacheKey(lat, lon, apiKey), "error", err)
		return nil, err
	}
	return &weather, nil
}

// fetchFromExternalAPI retrieves weather data from OpenWeatherMap API
func (r *weatherRepository) fetchFromExternalAPI(ctx context.Context, lat, lon float64, apiKey string) (*model.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrExternalAPI, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrLocationNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", ErrExternalAPI, resp.StatusCode)
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExternalAPI, err)
	}

	return data.Snapshot(), nil
}

// cacheWeather stores weather data in Redis cache
func (r *weatherRepository) cacheWeather(ctx context.Context, lat, lon float64, apiKey string, weather *model.WeatherSnapshot) {
	if r.redisClient == nil {
		return
	}
	b, err := json.Marshal(weather)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, cacheKey(lat, lon, apiKey), b, r.cacheExpiration).Err(); err != nil {
		r.logger.Warnw("Weather cache write failed", "error", err)
	}
}
