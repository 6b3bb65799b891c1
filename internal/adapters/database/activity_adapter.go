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

var activityColumns = []interface{}{
	"id", "crop_id", "activity_type", "description", "quantity", "unit",
	"notes", "performed_at",
}

// ActivityLogAdapter implements ActivityLogRepository
type ActivityLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewActivityLogAdapter creates a new activity log adapter
func NewActivityLogAdapter(client *postgres.Client) repositories.ActivityLogRepository {
	return &ActivityLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts an activity log entry
func (a *ActivityLogAdapter) Create(ctx context.Context, activity *entities.ActivityLog) error {
	if activity.PerformedAt.IsZero() {
		activity.PerformedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"crop_id":       activity.CropID,
		"activity_type": activity.ActivityType,
		"description":   nullString(activity.Description),
		"quantity":      sql.NullFloat64{Float64: activity.Quantity, Valid: activity.Quantity != 0},
		"unit":          nullString(activity.Unit),
		"notes":         nullString(activity.Notes),
		"performed_at":  activity.PerformedAt,
	}

	query, args, err := a.db.Insert("activity_logs").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build activity insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&activity.ID); err != nil {
		return apperrors.NewInternalError("failed to create activity log", err)
	}

	return nil
}

// ListByCrop returns activities for a crop, newest first
func (a *ActivityLogAdapter) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.ActivityLog, error) {
	ds := a.db.Select(activityColumns...).From("activity_logs").
		Where(goqu.Ex{"crop_id": cropID}).
		Order(goqu.I("performed_at").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	return a.list(ctx, ds)
}

// ListRecent returns activities performed at or after since, newest first
func (a *ActivityLogAdapter) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.ActivityLog, error) {
	ds := a.db.Select(activityColumns...).From("activity_logs").
		Where(goqu.Ex{"crop_id": cropID}, goqu.C("performed_at").Gte(since)).
		Order(goqu.I("performed_at").Desc()).
		Limit(uint(limit))
	return a.list(ctx, ds)
}

// DeleteByCrop removes all activities for a crop
func (a *ActivityLogAdapter) DeleteByCrop(ctx context.Context, cropID int64) error {
	query, args, err := a.db.Delete("activity_logs").Where(goqu.Ex{"crop_id": cropID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build activity delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete activity logs", err)
	}
	return nil
}

func (a *ActivityLogAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.ActivityLog, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build activity query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list activity logs", err)
	}
	defer rows.Close()

	var activities []*entities.ActivityLog
	for rows.Next() {
		activity := &entities.ActivityLog{}
		var description, unit, notes sql.NullString
		var quantity sql.NullFloat64

		err := rows.Scan(
			&activity.ID,
			&activity.CropID,
			&activity.ActivityType,
			&description,
			&quantity,
			&unit,
			&notes,
			&activity.PerformedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan activity log", err)
		}

		activity.Description = description.String
		activity.Quantity = quantity.Float64
		activity.Unit = unit.String
		activity.Notes = notes.String
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate activity logs", err)
	}

	return activities, nil
}
