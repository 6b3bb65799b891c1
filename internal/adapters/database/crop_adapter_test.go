package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func cropRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "crop_type", "variety", "planting_date",
		"harvest_date", "growth_stage", "area", "soil_type", "notes",
		"state", "district", "location", "zipcode", "created_at",
	})
}

func TestCropAdapterCreate(t *testing.T) {
	ctx := context.Background()
	client, mock := setupMockDB(t)
	adapter := NewCropAdapter(client)

	mock.ExpectQuery(`INSERT INTO "crops"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	crop := &entities.Crop{UserID: "user-1", Name: "Tomato Field A"}
	require.NoError(t, adapter.Create(ctx, crop))
	assert.Equal(t, int64(7), crop.ID)
	assert.False(t, crop.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCropAdapterGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps null columns to zero values", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewCropAdapter(client)

		planted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT .* FROM "crops" WHERE`).
			WillReturnRows(cropRows().AddRow(
				5, "user-1", "Tomato Field A", "vegetable", "Roma", planted,
				nil, nil, "2 acres", nil, nil,
				"Maharashtra", nil, nil, nil, time.Now().UTC(),
			))

		crop, err := adapter.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Tomato Field A", crop.Name)
		assert.Equal(t, "Roma", crop.Variety)
		require.NotNil(t, crop.PlantingDate)
		assert.Equal(t, planted, *crop.PlantingDate)
		assert.Empty(t, crop.HarvestDate)
		assert.Empty(t, crop.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row maps to not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewCropAdapter(client)

		mock.ExpectQuery(`SELECT .* FROM "crops" WHERE`).
			WillReturnRows(cropRows())

		_, err := adapter.GetByID(ctx, 404)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCropAdapterUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewCropAdapter(client)

		mock.ExpectExec(`UPDATE "crops"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Update(ctx, &entities.Crop{ID: 404, Name: "Gone"})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("updates an existing crop", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewCropAdapter(client)

		mock.ExpectExec(`UPDATE "crops"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.Update(ctx, &entities.Crop{ID: 5, Name: "Tomato Field A"})
		assert.NoError(t, err)
	})
}

func TestCropAdapterDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewCropAdapter(client)

		mock.ExpectExec(`DELETE FROM "crops"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Delete(ctx, 404)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCropAdapterCount(t *testing.T) {
	ctx := context.Background()
	client, mock := setupMockDB(t)
	adapter := NewCropAdapter(client)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := adapter.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}
