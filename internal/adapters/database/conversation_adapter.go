package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	"github.com/farmersguild/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// CropConversationAdapter implements CropConversationRepository
type CropConversationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCropConversationAdapter creates a new crop conversation adapter
func NewCropConversationAdapter(client *postgres.Client) repositories.CropConversationRepository {
	return &CropConversationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a turn pair for a crop
func (a *CropConversationAdapter) Create(ctx context.Context, conversation *entities.CropConversation) error {
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"crop_id":      conversation.CropID,
		"message":      conversation.Message,
		"response":     conversation.Response,
		"context_used": nullString(conversation.ContextUsed),
		"created_at":   conversation.CreatedAt,
	}

	query, args, err := a.db.Insert("crop_conversations").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build conversation insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&conversation.ID); err != nil {
		return apperrors.NewInternalError("failed to create crop conversation", err)
	}

	return nil
}

// ListByCrop returns turn pairs oldest first. Rows sharing a creation
// timestamp stay in insertion order via the id tiebreak.
func (a *CropConversationAdapter) ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropConversation, error) {
	query, args, err := a.db.Select(
		"id", "crop_id", "message", "response", "context_used", "created_at",
	).From("crop_conversations").
		Where(goqu.Ex{"crop_id": cropID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build conversation query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list crop conversations", err)
	}
	defer rows.Close()

	var conversations []*entities.CropConversation
	for rows.Next() {
		conversation := &entities.CropConversation{}
		var contextUsed sql.NullString

		err := rows.Scan(
			&conversation.ID,
			&conversation.CropID,
			&conversation.Message,
			&conversation.Response,
			&contextUsed,
			&conversation.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan crop conversation", err)
		}

		conversation.ContextUsed = contextUsed.String
		conversations = append(conversations, conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate crop conversations", err)
	}

	return conversations, nil
}

// DeleteByCrop removes all pairs for a crop. Deleting an empty history is
// not an error.
func (a *CropConversationAdapter) DeleteByCrop(ctx context.Context, cropID int64) error {
	query, args, err := a.db.Delete("crop_conversations").Where(goqu.Ex{"crop_id": cropID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build conversation delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete crop conversations", err)
	}
	return nil
}

// Count returns the total number of stored turn pairs
func (a *CropConversationAdapter) Count(ctx context.Context) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("crop_conversations").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build conversation count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count crop conversations", err)
	}
	return count, nil
}

// CountByUser returns the number of turn pairs across a user's crops
func (a *CropConversationAdapter) CountByUser(ctx context.Context, userID string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From(goqu.T("crop_conversations").As("cc")).
		Join(goqu.T("crops").As("c"), goqu.On(goqu.Ex{"cc.crop_id": goqu.I("c.id")})).
		Where(goqu.Ex{"c.user_id": userID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build conversation count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count crop conversations", err)
	}
	return count, nil
}

// DiseaseChatAdapter implements DiseaseChatRepository
type DiseaseChatAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDiseaseChatAdapter creates a new disease chat adapter
func NewDiseaseChatAdapter(client *postgres.Client) repositories.DiseaseChatRepository {
	return &DiseaseChatAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a turn pair for a detection
func (a *DiseaseChatAdapter) Create(ctx context.Context, chat *entities.DiseaseChat) error {
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"detection_id": chat.DetectionID,
		"message":      chat.Message,
		"response":     chat.Response,
		"created_at":   chat.CreatedAt,
	}

	query, args, err := a.db.Insert("disease_chats").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build disease chat insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&chat.ID); err != nil {
		return apperrors.NewInternalError("failed to create disease chat", err)
	}

	return nil
}

// ListByDetection returns turn pairs oldest first
func (a *DiseaseChatAdapter) ListByDetection(ctx context.Context, detectionID int64) ([]*entities.DiseaseChat, error) {
	query, args, err := a.db.Select(
		"id", "detection_id", "message", "response", "created_at",
	).From("disease_chats").
		Where(goqu.Ex{"detection_id": detectionID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build disease chat query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list disease chats", err)
	}
	defer rows.Close()

	var chats []*entities.DiseaseChat
	for rows.Next() {
		chat := &entities.DiseaseChat{}
		err := rows.Scan(
			&chat.ID,
			&chat.DetectionID,
			&chat.Message,
			&chat.Response,
			&chat.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan disease chat", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate disease chats", err)
	}

	return chats, nil
}

// DeleteByDetection removes all pairs for a detection
func (a *DiseaseChatAdapter) DeleteByDetection(ctx context.Context, detectionID int64) error {
	query, args, err := a.db.Delete("disease_chats").Where(goqu.Ex{"detection_id": detectionID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build disease chat delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete disease chats", err)
	}
	return nil
}
