package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	"github.com/farmersguild/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

var cropColumns = []interface{}{
	"id", "user_id", "name", "crop_type", "variety", "planting_date",
	"harvest_date", "growth_stage", "area", "soil_type", "notes",
	"state", "district", "location", "zipcode", "created_at",
}

// CropAdapter implements CropRepository
type CropAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCropAdapter creates a new crop adapter
func NewCropAdapter(client *postgres.Client) repositories.CropRepository {
	return &CropAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a crop and fills in its generated id
func (a *CropAdapter) Create(ctx context.Context, crop *entities.Crop) error {
	if crop.CreatedAt.IsZero() {
		crop.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"user_id":       crop.UserID,
		"name":          crop.Name,
		"crop_type":     nullString(crop.CropType),
		"variety":       nullString(crop.Variety),
		"planting_date": nullTime(crop.PlantingDate),
		"harvest_date":  nullString(crop.HarvestDate),
		"growth_stage":  nullString(crop.GrowthStage),
		"area":          nullString(crop.Area),
		"soil_type":     nullString(crop.SoilType),
		"notes":         nullString(crop.Notes),
		"state":         nullString(crop.State),
		"district":      nullString(crop.District),
		"location":      nullString(crop.Location),
		"zipcode":       nullString(crop.Zipcode),
		"created_at":    crop.CreatedAt,
	}

	query, args, err := a.db.Insert("crops").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build crop insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&crop.ID); err != nil {
		return apperrors.NewInternalError("failed to create crop", err)
	}

	return nil
}

// GetByID retrieves a crop by id
func (a *CropAdapter) GetByID(ctx context.Context, id int64) (*entities.Crop, error) {
	query, args, err := a.db.Select(cropColumns...).From("crops").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build crop query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	crop, err := scanCrop(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get crop", err)
	}
	return crop, nil
}

// ListByUser returns the user's crops, newest first
func (a *CropAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Crop, error) {
	query, args, err := a.db.Select(cropColumns...).From("crops").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build crop list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list crops", err)
	}
	defer rows.Close()

	var crops []*entities.Crop
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan crop", err)
		}
		crops = append(crops, crop)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate crops", err)
	}

	return crops, nil
}

// Update updates a crop's mutable fields
func (a *CropAdapter) Update(ctx context.Context, crop *entities.Crop) error {
	record := goqu.Record{
		"name":          crop.Name,
		"crop_type":     nullString(crop.CropType),
		"variety":       nullString(crop.Variety),
		"planting_date": nullTime(crop.PlantingDate),
		"harvest_date":  nullString(crop.HarvestDate),
		"growth_stage":  nullString(crop.GrowthStage),
		"area":          nullString(crop.Area),
		"soil_type":     nullString(crop.SoilType),
		"notes":         nullString(crop.Notes),
		"state":         nullString(crop.State),
		"district":      nullString(crop.District),
		"location":      nullString(crop.Location),
		"zipcode":       nullString(crop.Zipcode),
	}

	query, args, err := a.db.Update("crops").
		Set(record).
		Where(goqu.Ex{"id": crop.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build crop update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update crop", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", crop.ID))
	}

	return nil
}

// Delete removes a crop
func (a *CropAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("crops").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build crop delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete crop", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", id))
	}

	return nil
}

// Count returns the total number of crops
func (a *CropAdapter) Count(ctx context.Context) (int, error) {
	return a.count(ctx, goqu.Ex{})
}

// CountByUser returns the number of crops owned by the user
func (a *CropAdapter) CountByUser(ctx context.Context, userID string) (int, error) {
	return a.count(ctx, goqu.Ex{"user_id": userID})
}

func (a *CropAdapter) count(ctx context.Context, where goqu.Ex) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("crops").
		Where(where).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build crop count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count crops", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCrop(row rowScanner) (*entities.Crop, error) {
	crop := &entities.Crop{}
	var cropType, variety, harvestDate, growthStage, area, soilType sql.NullString
	var notes, state, district, location, zipcode sql.NullString
	var plantingDate sql.NullTime

	err := row.Scan(
		&crop.ID,
		&crop.UserID,
		&crop.Name,
		&cropType,
		&variety,
		&plantingDate,
		&harvestDate,
		&growthStage,
		&area,
		&soilType,
		&notes,
		&state,
		&district,
		&location,
		&zipcode,
		&crop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	crop.CropType = cropType.String
	crop.Variety = variety.String
	crop.HarvestDate = harvestDate.String
	crop.GrowthStage = growthStage.String
	crop.Area = area.String
	crop.SoilType = soilType.String
	crop.Notes = notes.String
	crop.State = state.String
	crop.District = district.String
	crop.Location = location.String
	crop.Zipcode = zipcode.String
	if plantingDate.Valid {
		t := plantingDate.Time
		crop.PlantingDate = &t
	}

	return crop, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
