package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/presenter"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"github.com/fakhrymubarak/weather-cli/internal/selector"
)

// ConfigStore is the persisted configuration the workflow reads and updates.
type ConfigStore interface {
	LoadCandidates() ([]model.City, error)
	LoadActiveCity() (model.City, error)
	SaveActiveCity(city model.City) error
	LoadAPIKey() (model.ApiKey, error)
}

// WeatherServiceInterface is what the CLI needs from the service.
type WeatherServiceInterface interface {
	Report(ctx context.Context, prompt bool) (string, error)
}

type WeatherService struct {
	Store       ConfigStore
	Selector    selector.Selector
	WeatherRepo repository.WeatherRepository
	Logger      *zap.SugaredLogger
}

func NewWeatherService(store ConfigStore, sel selector.Selector, repo repository.WeatherRepository, logger *zap.SugaredLogger) *WeatherService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WeatherService{
		Store:       store,
		Selector:    sel,
		WeatherRepo: repo,
		Logger:      logger,
	}
}

// ResolveContext returns the city to report on and the API key.
// With prompt set the user picks a city from the stored candidates and the
// choice becomes the active city; otherwise the stored active city is used.
func (s *WeatherService) ResolveContext(ctx context.Context, prompt bool) (model.City, model.ApiKey, error) {
	var city model.City
	var err error
	if prompt {
		city, err = s.chooseCity()
	} else {
		city, err = s.Store.LoadActiveCity()
	}
	if err != nil {
		return model.City{}, model.ApiKey{}, err
	}

	key, err := s.Store.LoadAPIKey()
	if err != nil {
		return model.City{}, model.ApiKey{}, err
	}

	s.Logger.Debugw("Resolved configuration", "city", city.Name, "country", city.Country, "prompted", prompt)
	return city, key, nil
}

func (s *WeatherService) chooseCity() (model.City, error) {
	cities, err := s.Store.LoadCandidates()
	if err != nil {
		return model.City{}, err
	}

	captions := make([]string, len(cities))
	for i, c := range cities {
		captions[i] = fmt.Sprintf("%+v", c)
	}

	idx, err := s.Selector.Select(captions)
	if err != nil {
		return model.City{}, err
	}
	if idx < 0 || idx >= len(cities) {
		return model.City{}, fmt.Errorf("%w: index %d of %d cities", selector.ErrSelectionOutOfRange, idx, len(cities))
	}

	chosen := cities[idx]
	if err := s.Store.SaveActiveCity(chosen); err != nil {
		return model.City{}, err
	}
	s.Logger.Infow("Saved active city", "city", chosen.Name)
	return chosen, nil
}

// Report resolves the configuration, fetches current weather and renders the summary.
// Nothing is returned unless every step succeeded.
func (s *WeatherService) Report(ctx context.Context, prompt bool) (string, error) {
	city, key, err := s.ResolveContext(ctx, prompt)
	if err != nil {
		return "", err
	}

	weather, err := s.WeatherRepo.GetWeather(ctx, city.Lat, city.Lon, key.Key)
	if err != nil {
		return "", err
	}

	return presenter.Render(city, *weather), nil
}
