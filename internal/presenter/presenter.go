// Package presenter renders the weather summary printed by the CLI.
package presenter

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"github.com/fakhrymubarak/weather-cli/internal/condition"
	"github.com/fakhrymubarak/weather-cli/internal/model"
)

var highlight = color.New(color.FgYellow).SprintFunc()

const summaryTemplate = `Weather in %s - %s
  🢒 %s %s
  🢒 Temperature: %s°C | feels_like %s°C
  🢒 Atmospheric pressure : %d hPa
  🢒 Visibility: %d m
  🢒 Humidity: %d%%
  🢒 Wind speed: %s m/s
  🢒 Clouds: %d%%
`

// Render formats the snapshot for city. Field order and units are stable output.
func Render(city model.City, weather model.WeatherSnapshot) string {
	return fmt.Sprintf(summaryTemplate,
		highlight(city.Name), highlight(city.Country),
		weather.Description, condition.Icon(weather.Description),
		formatFloat(weather.Temperature), formatFloat(weather.FeelsLike),
		weather.Pressure,
		weather.Visibility,
		weather.Humidity,
		formatFloat(weather.WindSpeed),
		weather.CloudCover,
	)
}

// formatFloat prints the shortest representation that round-trips, e.g. 14 rather than 14.000000.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
