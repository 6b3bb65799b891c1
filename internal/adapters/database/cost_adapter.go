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

// CropCostAdapter implements CropCostRepository
type CropCostAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCropCostAdapter creates a new crop cost adapter
func NewCropCostAdapter(client *postgres.Client) repositories.CropCostRepository {
	return &CropCostAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a cost entry
func (a *CropCostAdapter) Create(ctx context.Context, cost *entities.CropCost) error {
	if cost.CreatedAt.IsZero() {
		cost.CreatedAt = time.Now().UTC()
	}
	if cost.Date.IsZero() {
		cost.Date = cost.CreatedAt
	}

	record := goqu.Record{
		"crop_id":      cost.CropID,
		"expense_type": cost.ExpenseType,
		"title":        cost.Title,
		"amount":       cost.Amount,
		"description":  nullString(cost.Description),
		"date":         cost.Date,
		"created_at":   cost.CreatedAt,
	}

	query, args, err := a.db.Insert("crop_costs").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cost insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&cost.ID); err != nil {
		return apperrors.NewInternalError("failed to create crop cost", err)
	}

	return nil
}

// ListByCrop returns cost entries for a crop, newest first
func (a *CropCostAdapter) ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropCost, error) {
	query, args, err := a.db.Select(
		"id", "crop_id", "expense_type", "title", "amount", "description", "date", "created_at",
	).From("crop_costs").
		Where(goqu.Ex{"crop_id": cropID}).
		Order(goqu.I("date").Desc(), goqu.I("id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cost query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list crop costs", err)
	}
	defer rows.Close()

	var costs []*entities.CropCost
	for rows.Next() {
		cost := &entities.CropCost{}
		var description sql.NullString

		err := rows.Scan(
			&cost.ID,
			&cost.CropID,
			&cost.ExpenseType,
			&cost.Title,
			&cost.Amount,
			&description,
			&cost.Date,
			&cost.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan crop cost", err)
		}

		cost.Description = description.String
		costs = append(costs, cost)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate crop costs", err)
	}

	return costs, nil
}

// SummaryByCrop aggregates spending per expense type for a crop
func (a *CropCostAdapter) SummaryByCrop(ctx context.Context, cropID int64) (*entities.CostSummary, error) {
	query, args, err := a.db.Select(
		"expense_type",
		goqu.SUM("amount").As("total"),
	).From("crop_costs").
		Where(goqu.Ex{"crop_id": cropID}).
		GroupBy("expense_type").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cost summary query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to summarize crop costs", err)
	}
	defer rows.Close()

	summary := &entities.CostSummary{
		CropID: cropID,
		ByType: make(map[string]float64),
	}
	for rows.Next() {
		var expenseType string
		var total float64
		if err := rows.Scan(&expenseType, &total); err != nil {
			return nil, apperrors.NewInternalError("failed to scan cost summary", err)
		}
		summary.ByType[expenseType] = total
		summary.Total += total
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate cost summary", err)
	}

	return summary, nil
}

// TotalAll returns the platform-wide spend total
func (a *CropCostAdapter) TotalAll(ctx context.Context) (float64, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.SUM("amount"), 0)).From("crop_costs").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build cost total query", err)
	}

	var total float64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to total crop costs", err)
	}
	return total, nil
}

// TotalByUser returns the spend total across a user's crops
func (a *CropCostAdapter) TotalByUser(ctx context.Context, userID string) (float64, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.SUM(goqu.I("cc.amount")), 0)).
		From(goqu.T("crop_costs").As("cc")).
		Join(goqu.T("crops").As("c"), goqu.On(goqu.Ex{"cc.crop_id": goqu.I("c.id")})).
		Where(goqu.Ex{"c.user_id": userID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build cost total query", err)
	}

	var total float64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to total crop costs", err)
	}
	return total, nil
}

// DeleteByCrop removes all cost entries for a crop
func (a *CropCostAdapter) DeleteByCrop(ctx context.Context, cropID int64) error {
	query, args, err := a.db.Delete("crop_costs").Where(goqu.Ex{"crop_id": cropID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cost delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete crop costs", err)
	}
	return nil
}
