package weather

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a weather log row. An empty user ID persists as NULL.
func (r *PGRepo) Create(ctx context.Context, log Log) error {
	const query = `
INSERT INTO weather_logs (
	id, user_id, location, temperature, humidity, pressure, precipitation,
	wind_speed, weather_condition, recommendation, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	var userID any
	if log.UserID != "" {
		userID = log.UserID
	}
	_, err := r.DB.ExecContext(ctx, query,
		log.ID,
		userID,
		log.Location,
		log.Observation.Temperature,
		log.Observation.Humidity,
		log.Observation.Pressure,
		log.Observation.Rainfall,
		log.Observation.WindSpeed,
		log.Observation.Condition,
		log.Recommendation,
		log.CreatedAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
