package repository

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func newMockHTTPClient(fn func(req *http.Request) *http.Response) *http.Client {
	return &http.Client{Transport: RoundTripperFunc(fn)}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

const parisBody = `{
  "name": "Paris",
  "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
  "main": {"temp": 15.2, "feels_like": 14.0, "pressure": 1012, "humidity": 77},
  "visibility": 8000,
  "wind": {"speed": 3.4, "deg": 200},
  "clouds": {"all": 90},
  "sys": {"country": "FR"}
}`

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
