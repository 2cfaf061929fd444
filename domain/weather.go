package domain

import (
	"encoding/json"
)

// NormalizedWeather is the single shape both weather providers are mapped
// into. Raw keeps the provider payload for debugging.
type NormalizedWeather struct {
	Temp         float64         `json:"temp"`
	Condition    string          `json:"condition"`
	Icon         string          `json:"icon"`
	Humidity     int             `json:"humidity"`
	WindKph      float64         `json:"wind_kph"`
	Sunrise      string          `json:"sunrise"`
	Sunset       string          `json:"sunset"`
	LocationName string          `json:"location_name"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}
