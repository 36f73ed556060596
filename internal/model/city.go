package model

// City is a place the user can monitor. Lat and Lon are what the weather lookup uses.
type City struct {
	Name    string  `json:"name" validate:"required"`
	Country string  `json:"country" validate:"required"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lon     float64 `json:"lon" validate:"longitude"`
}

// ApiKey is the OpenWeatherMap credential record.
type ApiKey struct {
	Key string `json:"key" validate:"required"`
}
