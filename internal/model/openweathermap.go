package model

// OpenWeatherMapResponse is the subset of the /data/2.5/weather body the CLI reads.
type OpenWeatherMapResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Snapshot flattens the response into the fields the summary needs.
func (r *OpenWeatherMapResponse) Snapshot() *WeatherSnapshot {
	snapshot := &WeatherSnapshot{
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Pressure:    r.Main.Pressure,
		Visibility:  r.Visibility,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
		CloudCover:  r.Clouds.All,
	}
	if len(r.Weather) > 0 {
		snapshot.Description = r.Weather[0].Description
	}
	return snapshot
}
