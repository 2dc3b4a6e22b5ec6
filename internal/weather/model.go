package weather

import "time"

// Observation is the reshaped current-conditions reading for one location.
type Observation struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"windSpeed"`
	Rainfall    float64 `json:"rainfall"`
	Pressure    float64 `json:"pressure"`
	Location    string  `json:"location"`
	Country     string  `json:"country"`
}

// Recommendations is the rule-based farming advice derived from an
// Observation.
type Recommendations struct {
	Irrigation string `json:"irrigation"`
	Disease    string `json:"disease"`
	Pests      string `json:"pests"`
	General    string `json:"general"`
}

// Log is one persisted weather lookup.
type Log struct {
	ID             string
	UserID         string
	Location       string
	Observation    Observation
	Recommendation string
	CreatedAt      time.Time
}
