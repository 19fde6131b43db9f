package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/questforge/questforge-backend/internal/apperrors"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org"

// WeatherInfo is the trimmed response the client receives.
type WeatherInfo struct {
	Location string  `json:"location"`
	Temp     float64 `json:"temp"`
	Weather  struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// WeatherService proxies the OpenWeatherMap current-weather endpoint.
// Disabled by default; when disabled every call returns Unavailable.
type WeatherService struct {
	APIKey  string
	Enabled bool
	BaseURL string
	Client  *http.Client
}

func NewWeatherService(apiKey string, enabled bool) *WeatherService {
	return &WeatherService{
		APIKey:  apiKey,
		Enabled: enabled,
		BaseURL: defaultWeatherBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// upstream response shape, validated before use
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Current fetches the weather at a coordinate. Units defaults to
// "metric" and must be "metric" or "imperial".
func (s *WeatherService) Current(ctx context.Context, latitude, longitude float64, units string) (*WeatherInfo, error) {
	if !s.Enabled {
		return nil, apperrors.Unavailable("Weather API is disabled.")
	}
	if units == "" {
		units = "metric"
	}
	if units != "metric" && units != "imperial" {
		return nil, apperrors.Validation("Units must be \"metric\" or \"imperial\".")
	}

	url := fmt.Sprintf("%s/data/2.5/weather?units=%s&lat=%f&lon=%f&appid=%s",
		s.BaseURL, units, latitude, longitude, s.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Internal("failed to build weather request", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, apperrors.Internal("weather request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal("unexpected response from OpenWeatherMap",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var upstream openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, apperrors.Internal("failed to decode weather response", err)
	}
	if upstream.Name == "" || len(upstream.Weather) == 0 {
		return nil, apperrors.Internal("unexpected response from OpenWeatherMap",
			fmt.Errorf("missing fields"))
	}

	info := &WeatherInfo{Location: upstream.Name, Temp: upstream.Main.Temp}
	info.Weather.Main = upstream.Weather[0].Main
	info.Weather.Description = upstream.Weather[0].Description
	return info, nil
}
