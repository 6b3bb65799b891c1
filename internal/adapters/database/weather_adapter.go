package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	"github.com/farmersguild/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// WeatherAlertAdapter implements WeatherAlertRepository
type WeatherAlertAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWeatherAlertAdapter creates a new weather alert adapter
func NewWeatherAlertAdapter(client *postgres.Client) repositories.WeatherAlertRepository {
	return &WeatherAlertAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a weather alert
func (a *WeatherAlertAdapter) Create(ctx context.Context, alert *entities.WeatherAlert) error {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"crop_id":       alert.CropID,
		"alert_type":    alert.AlertType,
		"description":   nullString(alert.Description),
		"temperature":   alert.Temperature,
		"humidity":      alert.Humidity,
		"precipitation": alert.Precipitation,
		"wind_speed":    alert.WindSpeed,
		"is_critical":   alert.IsCritical,
		"created_at":    alert.CreatedAt,
	}

	query, args, err := a.db.Insert("weather_alerts").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build alert insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&alert.ID); err != nil {
		return apperrors.NewInternalError("failed to create weather alert", err)
	}

	return nil
}

// ListRecent returns alerts created at or after since, newest first
func (a *WeatherAlertAdapter) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.WeatherAlert, error) {
	query, args, err := a.db.Select(
		"id", "crop_id", "alert_type", "description", "temperature",
		"humidity", "precipitation", "wind_speed", "is_critical", "created_at",
	).From("weather_alerts").
		Where(goqu.Ex{"crop_id": cropID}, goqu.C("created_at").Gte(since)).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alert query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list weather alerts", err)
	}
	defer rows.Close()

	var alerts []*entities.WeatherAlert
	for rows.Next() {
		alert := &entities.WeatherAlert{}
		var description sql.NullString

		err := rows.Scan(
			&alert.ID,
			&alert.CropID,
			&alert.AlertType,
			&description,
			&alert.Temperature,
			&alert.Humidity,
			&alert.Precipitation,
			&alert.WindSpeed,
			&alert.IsCritical,
			&alert.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan weather alert", err)
		}

		alert.Description = description.String
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate weather alerts", err)
	}

	return alerts, nil
}

// DeleteByCrop removes all alerts for a crop
func (a *WeatherAlertAdapter) DeleteByCrop(ctx context.Context, cropID int64) error {
	query, args, err := a.db.Delete("weather_alerts").Where(goqu.Ex{"crop_id": cropID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build alert delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete weather alerts", err)
	}
	return nil
}
