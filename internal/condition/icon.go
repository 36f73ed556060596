// Package condition maps OpenWeatherMap condition descriptions to display icons.
package condition

import "strings"

const (
	IconSun          = "☀"
	IconPartialCloud = "🌤"
	IconTornado      = "🌪"
	IconCloud        = "☁"
	IconRain         = "🌧"
	IconStorm        = "⛈"
	IconSnow         = "🌨"
	IconFog          = "🌫"
)

// Icon returns the icon for a description, or "" when nothing matches.
// Whole-description matches are checked before substring matches, so
// "few clouds" gets the partial-cloud icon while "scattered clouds" gets the cloud icon.
func Icon(description string) string {
	switch description {
	case "clear sky":
		return IconSun
	case "few clouds":
		return IconPartialCloud
	case "tornado":
		return IconTornado
	}

	switch {
	case hasAny(description, "clouds"):
		return IconCloud
	case hasAny(description, "rain", "drizzle"):
		return IconRain
	case hasAny(description, "thunderstorm"):
		return IconStorm
	case hasAny(description, "snow", "sleet"):
		return IconSnow
	case hasAny(description, "mist", "smoke", "sand", "dust"):
		return IconFog
	default:
		return ""
	}
}

// hasAny returns true if s contains any of the substrings.
func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
