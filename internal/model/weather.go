package model

// WeatherSnapshot holds the current conditions for one location.
// Temperatures are in °C, pressure in hPa, visibility in meters and wind speed in m/s.
type WeatherSnapshot struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Pressure    int     `json:"pressure"`
	Visibility  int     `json:"visibility"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	CloudCover  int     `json:"cloud_cover"`
}
