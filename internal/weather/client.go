package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"
	requestTimeout = 10 * time.Second
)

// Client fetches current conditions from the OpenWeather API.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient constructs an OpenWeather client.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		timeout:    requestTimeout,
		httpClient: &http.Client{},
	}, nil
}

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain    map[string]float64 `json:"rain"`
	Message string             `json:"message"`
}

// Current returns the reshaped current conditions for a location.
func (c *Client) Current(ctx context.Context, location string) (Observation, error) {
	if strings.TrimSpace(location) == "" {
		return Observation{}, fmt.Errorf("location is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/data/2.5/weather?q=%s&units=metric&appid=%s",
		c.baseURL, url.QueryEscape(location), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Observation{}, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Observation{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Observation{}, err
	}

	var parsed currentResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := resp.Status
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
			msg = parsed.Message
		}
		return Observation{}, fmt.Errorf("openweather error: %s", msg)
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Observation{}, fmt.Errorf("openweather response parse: %w", err)
	}

	obs := Observation{
		Temperature: parsed.Main.Temp,
		Humidity:    parsed.Main.Humidity,
		Pressure:    parsed.Main.Pressure,
		WindSpeed:   parsed.Wind.Speed,
		Rainfall:    parsed.Rain["1h"],
		Location:    parsed.Name,
		Country:     parsed.Sys.Country,
	}
	if len(parsed.Weather) > 0 {
		obs.Condition = parsed.Weather[0].Main
		obs.Icon = parsed.Weather[0].Icon
	}
	return obs, nil
}
