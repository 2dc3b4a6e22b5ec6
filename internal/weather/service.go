package weather

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"farmassist-backend/internal/shared/metrics"
	"farmassist-backend/internal/shared/telemetry"
)

// Fetcher is the outbound dependency that resolves a location to current
// conditions.
type Fetcher interface {
	Current(ctx context.Context, location string) (Observation, error)
}

// Service fetches conditions and attaches rule-based farming advice.
type Service struct {
	Repo    Repo
	Fetcher Fetcher
}

// Report is one weather lookup with advice attached.
type Report struct {
	Observation
	Recommendations Recommendations `json:"recommendations"`
}

// Lookup fetches conditions for a location and derives recommendations.
// Persistence is best effort.
func (s *Service) Lookup(ctx context.Context, userID, location string) (Report, error) {
	metrics.IncWeatherRequest()

	if s.Fetcher == nil {
		return Report{}, errors.New("weather provider is not configured")
	}

	obs, err := s.Fetcher.Current(ctx, location)
	if err != nil {
		telemetry.Error("weather.fetch_failed", map[string]any{
			"location": location,
			"err":      err.Error(),
		})
		return Report{}, err
	}

	report := Report{Observation: obs, Recommendations: Recommend(obs)}

	if s.Repo != nil {
		log := Log{
			ID:             uuid.NewString(),
			UserID:         userID,
			Location:       location,
			Observation:    obs,
			Recommendation: joinRecommendations(report.Recommendations),
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.Repo.Create(ctx, log); err != nil {
			telemetry.Error("weather.persist_failed", map[string]any{
				"user_id": userID,
				"err":     err.Error(),
			})
		}
	}
	return report, nil
}

func joinRecommendations(r Recommendations) string {
	return strings.Join([]string{r.Irrigation, r.Disease, r.Pests, r.General}, "\n")
}
