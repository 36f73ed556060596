package integrationtest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fakhrymubarak/weather-cli/internal/cli"
)

const (
	citiesJSON = `[
  {"name": "Paris", "country": "FR", "lat": 48.8566, "lon": 2.3522},
  {"name": "Berlin", "country": "DE", "lat": 52.52, "lon": 13.405},
  {"name": "Atlantis", "country": "XX", "lat": 0, "lon": 0}
]`
	validKey = "test_api_key"
)

var owmBodies = map[string]string{
	"48.8566,2.3522": `{"name": "Paris", "weather": [{"description": "light rain"}],
		"main": {"temp": 15.2, "feels_like": 14.0, "pressure": 1012, "humidity": 77},
		"visibility": 8000, "wind": {"speed": 3.4}, "clouds": {"all": 90}, "sys": {"country": "FR"}}`,
	"52.52,13.405": `{"name": "Berlin", "weather": [{"description": "few clouds"}],
		"main": {"temp": 9.5, "feels_like": 7.1, "pressure": 1020, "humidity": 60},
		"visibility": 10000, "wind": {"speed": 5.1}, "clouds": {"all": 20}, "sys": {"country": "DE"}}`,
}

// mockOWMApi answers by coordinates and counts every request it serves.
func mockOWMApi(calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		q := r.URL.Query()
		if q.Get("appid") != validKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		body, ok := owmBodies[q.Get("lat")+","+q.Get("lon")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func writeConfigFiles(dir, cities, key string) error {
	if err := os.WriteFile(filepath.Join(dir, "city_config.json"), []byte(cities), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "key_config.json"), []byte(key), 0o644)
}

func runCLI(dir, stdin string, args ...string) (string, error) {
	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config-dir", dir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
