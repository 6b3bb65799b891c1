package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	"github.com/farmersguild/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

var detectionColumns = []interface{}{
	"id", "crop_id", "disease_name", "confidence", "severity", "image_path",
	"recommendations", "detected_at",
}

// DiseaseDetectionAdapter implements DiseaseDetectionRepository
type DiseaseDetectionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDiseaseDetectionAdapter creates a new disease detection adapter
func NewDiseaseDetectionAdapter(client *postgres.Client) repositories.DiseaseDetectionRepository {
	return &DiseaseDetectionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a detection record and fills in its generated id
func (a *DiseaseDetectionAdapter) Create(ctx context.Context, detection *entities.DiseaseDetection) error {
	if detection.DetectedAt.IsZero() {
		detection.DetectedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"crop_id":         detection.CropID,
		"disease_name":    detection.DiseaseName,
		"confidence":      detection.Confidence,
		"severity":        nullString(detection.Severity),
		"image_path":      nullString(detection.ImagePath),
		"recommendations": nullString(detection.Recommendations),
		"detected_at":     detection.DetectedAt,
	}

	query, args, err := a.db.Insert("disease_detections").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build detection insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&detection.ID); err != nil {
		return apperrors.NewInternalError("failed to create disease detection", err)
	}

	return nil
}

// GetByID retrieves a detection record by id
func (a *DiseaseDetectionAdapter) GetByID(ctx context.Context, id int64) (*entities.DiseaseDetection, error) {
	query, args, err := a.db.Select(detectionColumns...).From("disease_detections").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build detection query", err)
	}

	detection, err := scanDetection(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("disease detection %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get disease detection", err)
	}
	return detection, nil
}

// ListByCrop returns detections for a crop, newest first
func (a *DiseaseDetectionAdapter) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.DiseaseDetection, error) {
	ds := a.db.Select(detectionColumns...).From("disease_detections").
		Where(goqu.Ex{"crop_id": cropID}).
		Order(goqu.I("detected_at").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	return a.list(ctx, ds)
}

// ListRecent returns detections at or after since, newest first
func (a *DiseaseDetectionAdapter) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.DiseaseDetection, error) {
	ds := a.db.Select(detectionColumns...).From("disease_detections").
		Where(goqu.Ex{"crop_id": cropID}, goqu.C("detected_at").Gte(since)).
		Order(goqu.I("detected_at").Desc()).
		Limit(uint(limit))
	return a.list(ctx, ds)
}

// Delete removes a single detection record
func (a *DiseaseDetectionAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("disease_detections").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build detection delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete disease detection", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("disease detection %d not found", id))
	}

	return nil
}

// DeleteByCrop removes all detections for a crop
func (a *DiseaseDetectionAdapter) DeleteByCrop(ctx context.Context, cropID int64) error {
	query, args, err := a.db.Delete("disease_detections").Where(goqu.Ex{"crop_id": cropID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build detection delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete disease detections", err)
	}
	return nil
}

func (a *DiseaseDetectionAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.DiseaseDetection, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build detection query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list disease detections", err)
	}
	defer rows.Close()

	var detections []*entities.DiseaseDetection
	for rows.Next() {
		detection, err := scanDetection(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan disease detection", err)
		}
		detections = append(detections, detection)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate disease detections", err)
	}

	return detections, nil
}

func scanDetection(row rowScanner) (*entities.DiseaseDetection, error) {
	detection := &entities.DiseaseDetection{}
	var severity, imagePath, recommendations sql.NullString

	err := row.Scan(
		&detection.ID,
		&detection.CropID,
		&detection.DiseaseName,
		&detection.Confidence,
		&severity,
		&imagePath,
		&recommendations,
		&detection.DetectedAt,
	)
	if err != nil {
		return nil, err
	}

	detection.Severity = severity.String
	detection.ImagePath = imagePath.String
	detection.Recommendations = recommendations.String

	return detection, nil
}
