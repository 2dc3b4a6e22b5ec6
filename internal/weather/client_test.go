package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = server.URL
	return client
}

func TestCurrentReshapesResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Ibadan" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q", got)
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Ibadan",
			"sys": {"country": "NG"},
			"main": {"temp": 28.4, "humidity": 74, "pressure": 1012},
			"weather": [{"main": "Clouds", "icon": "04d"}],
			"wind": {"speed": 3.6},
			"rain": {"1h": 1.2}
		}`))
	})

	obs, err := client.Current(context.Background(), "Ibadan")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if obs.Location != "Ibadan" || obs.Country != "NG" {
		t.Fatalf("location = %q %q", obs.Location, obs.Country)
	}
	if obs.Temperature != 28.4 || obs.Humidity != 74 || obs.Pressure != 1012 {
		t.Fatalf("main fields = %+v", obs)
	}
	if obs.Condition != "Clouds" || obs.Icon != "04d" {
		t.Fatalf("condition = %q icon = %q", obs.Condition, obs.Icon)
	}
	if obs.Rainfall != 1.2 {
		t.Fatalf("rainfall = %v", obs.Rainfall)
	}
}

func TestCurrentMissingRainDefaultsToZero(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Kano","main":{"temp":33,"humidity":30,"pressure":1008},"weather":[{"main":"Clear","icon":"01d"}],"wind":{"speed":5}}`))
	})

	obs, err := client.Current(context.Background(), "Kano")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if obs.Rainfall != 0 {
		t.Fatalf("rainfall = %v, want 0", obs.Rainfall)
	}
}

func TestCurrentUpstreamErrorCarriesMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	_, err := client.Current(context.Background(), "Nowhereville")
	if err == nil || !strings.Contains(err.Error(), "city not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestCurrentRequiresLocation(t *testing.T) {
	client, err := NewClient("k")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Current(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
