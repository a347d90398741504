package models

// WeatherReport is the result of a city weather lookup
type WeatherReport struct {
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
}
