package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"groomify-backend/models"
)

var (
	ErrCityTooShort = errors.New("city name must be at least 3 characters")
	ErrCityNotFound = errors.New("city not found")
)

const (
	defaultGeocodeBaseURL = "https://api.opencagedata.com/geocode/v1/json"
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	weatherCacheTTL       = 5 * time.Minute
)

type weatherCacheEntry struct {
	report    models.WeatherReport
	expiresAt time.Time
}

// WeatherService resolves a city name to coordinates and fetches the
// current weather there. Lookups are cached briefly so repeated
// requests for the same city while the user types do not hammer the
// upstream APIs.
type WeatherService struct {
	geocodeKey     string
	weatherKey     string
	geocodeBaseURL string
	weatherBaseURL string
	client         *http.Client

	mu    sync.Mutex
	cache map[string]weatherCacheEntry
}

func NewWeatherService(geocodeKey, weatherKey string) *WeatherService {
	return &WeatherService{
		geocodeKey:     geocodeKey,
		weatherKey:     weatherKey,
		geocodeBaseURL: defaultGeocodeBaseURL,
		weatherBaseURL: defaultWeatherBaseURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		cache:          make(map[string]weatherCacheEntry),
	}
}

// Lookup returns the current weather for the named city.
func (s *WeatherService) Lookup(ctx context.Context, city string) (models.WeatherReport, error) {
	city = strings.TrimSpace(city)
	if len(city) < 3 {
		return models.WeatherReport{}, ErrCityTooShort
	}

	key := strings.ToLower(city)
	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && time.Now().Before(entry.expiresAt) {
		s.mu.Unlock()
		log.Printf("📦 Weather cache hit for %s", city)
		return entry.report, nil
	}
	s.mu.Unlock()

	lat, lng, err := s.geocode(ctx, city)
	if err != nil {
		return models.WeatherReport{}, err
	}

	report, err := s.currentWeather(ctx, lat, lng)
	if err != nil {
		return models.WeatherReport{}, err
	}
	report.City = city
	report.Latitude = lat
	report.Longitude = lng

	s.mu.Lock()
	s.cache[key] = weatherCacheEntry{report: report, expiresAt: time.Now().Add(weatherCacheTTL)}
	s.mu.Unlock()

	return report, nil
}

func (s *WeatherService) geocode(ctx context.Context, city string) (float64, float64, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("key", s.geocodeKey)
	query.Set("limit", "1")

	body, err := s.getJSON(ctx, s.geocodeBaseURL+"?"+query.Encode())
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}

	var payload struct {
		Results []struct {
			Geometry struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(payload.Results) == 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrCityNotFound, city)
	}
	return payload.Results[0].Geometry.Lat, payload.Results[0].Geometry.Lng, nil
}

func (s *WeatherService) currentWeather(ctx context.Context, lat, lng float64) (models.WeatherReport, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lng))
	query.Set("appid", s.weatherKey)
	query.Set("units", "metric")

	body, err := s.getJSON(ctx, s.weatherBaseURL+"?"+query.Encode())
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("weather request failed: %w", err)
	}

	var payload struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	report := models.WeatherReport{Temperature: payload.Main.Temp}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
	}
	return report, nil
}

func (s *WeatherService) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
