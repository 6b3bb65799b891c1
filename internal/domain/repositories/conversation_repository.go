package repositories

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// CropConversationRepository persists crop-scoped turn pairs.
type CropConversationRepository interface {
	Create(ctx context.Context, conversation *entities.CropConversation) error
	// ListByCrop returns pairs oldest first, ordered by creation time with
	// insertion order breaking ties.
	ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropConversation, error)
	DeleteByCrop(ctx context.Context, cropID int64) error
	Count(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// DiseaseChatRepository persists detection-scoped turn pairs.
type DiseaseChatRepository interface {
	Create(ctx context.Context, chat *entities.DiseaseChat) error
	// ListByDetection returns pairs oldest first.
	ListByDetection(ctx context.Context, detectionID int64) ([]*entities.DiseaseChat, error)
	DeleteByDetection(ctx context.Context, detectionID int64) error
}
