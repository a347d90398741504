package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"groomify-backend/service"
)

// WeatherController handles HTTP requests for city weather lookups
type WeatherController struct {
	weather *service.WeatherService
}

// NewWeatherController creates a new WeatherController
func NewWeatherController(weather *service.WeatherService) *WeatherController {
	return &WeatherController{
		weather: weather,
	}
}

// Lookup handles GET /weather?city=...
// Returns the current weather for a city. City names shorter than
// three characters are rejected before any upstream call.
func (c *WeatherController) Lookup(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Weather: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ Weather: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	city := r.URL.Query().Get("city")
	ctx := context.Background()

	report, err := c.weather.Lookup(ctx, city)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCityTooShort):
			log.Printf("❌ Weather: City name too short: %q", city)
			writeErrorJSON(w, http.StatusBadRequest, "City name must be at least 3 characters.")
		case errors.Is(err, service.ErrCityNotFound):
			log.Printf("🔍 Weather: City not found: %q", city)
			writeErrorJSON(w, http.StatusNotFound, fmt.Sprintf("City not found: %s", city))
		default:
			log.Printf("❌ Weather: %v", err)
			writeErrorJSON(w, http.StatusBadGateway, fmt.Sprintf("Weather lookup failed: %v", err))
		}
		return
	}

	log.Printf("✅ Weather: %s is %.1f°C, %s", report.City, report.Temperature, report.Description)
	writeJSON(w, http.StatusOK, report)
}
