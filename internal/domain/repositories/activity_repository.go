package repositories

import (
	"context"
	"time"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// ActivityLogRepository defines the interface for activity log operations.
type ActivityLogRepository interface {
	Create(ctx context.Context, activity *entities.ActivityLog) error
	ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.ActivityLog, error)
	// ListRecent returns activities performed at or after since, newest first,
	// capped at limit.
	ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.ActivityLog, error)
	DeleteByCrop(ctx context.Context, cropID int64) error
}
