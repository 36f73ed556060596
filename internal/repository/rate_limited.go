package repository

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/weather-cli/internal/model"
)

// RateLimitedRepository wraps a WeatherRepository and spaces out calls to the weather API.
type RateLimitedRepository struct {
	repo    WeatherRepository
	limiter *rate.Limiter
}

// NewRateLimitedRepository allows rps calls per second with bursts of up to burst calls.
func NewRateLimitedRepository(repo WeatherRepository, rps float64, burst int) *RateLimitedRepository {
	return &RateLimitedRepository{
		repo:    repo,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// GetWeather waits for the limiter or ctx before forwarding the call.
func (r *RateLimitedRepository) GetWeather(ctx context.Context, lat, lon float64, apiKey string) (*model.WeatherSnapshot, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait canceled: %v", ErrRetrievalFailure, err)
	}
	return r.repo.GetWeather(ctx, lat, lon, apiKey)
}

var _ WeatherRepository = (*RateLimitedRepository)(nil)
