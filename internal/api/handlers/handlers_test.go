package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/providers"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// In-memory repository stubs shared by the handler tests.

type stubCropRepo struct {
	crops map[int64]*entities.Crop
}

func newStubCropRepo(crops ...*entities.Crop) *stubCropRepo {
	byID := make(map[int64]*entities.Crop, len(crops))
	for _, crop := range crops {
		byID[crop.ID] = crop
	}
	return &stubCropRepo{crops: byID}
}

func (r *stubCropRepo) Create(ctx context.Context, crop *entities.Crop) error {
	crop.ID = int64(len(r.crops) + 1)
	r.crops[crop.ID] = crop
	return nil
}

func (r *stubCropRepo) GetByID(ctx context.Context, id int64) (*entities.Crop, error) {
	crop, ok := r.crops[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", id))
	}
	return crop, nil
}

func (r *stubCropRepo) ListByUser(ctx context.Context, userID string) ([]*entities.Crop, error) {
	var out []*entities.Crop
	for _, crop := range r.crops {
		if crop.UserID == userID {
			out = append(out, crop)
		}
	}
	return out, nil
}

func (r *stubCropRepo) Update(ctx context.Context, crop *entities.Crop) error {
	if _, ok := r.crops[crop.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", crop.ID))
	}
	r.crops[crop.ID] = crop
	return nil
}

func (r *stubCropRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.crops[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", id))
	}
	delete(r.crops, id)
	return nil
}

func (r *stubCropRepo) Count(ctx context.Context) (int, error) {
	return len(r.crops), nil
}

func (r *stubCropRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, crop := range r.crops {
		if crop.UserID == userID {
			count++
		}
	}
	return count, nil
}

type stubActivityRepo struct {
	entries []*entities.ActivityLog
}

func (r *stubActivityRepo) Create(ctx context.Context, activity *entities.ActivityLog) error {
	activity.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, activity)
	return nil
}

func (r *stubActivityRepo) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.ActivityLog, error) {
	return r.forCrop(cropID), nil
}

func (r *stubActivityRepo) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.ActivityLog, error) {
	return r.forCrop(cropID), nil
}

func (r *stubActivityRepo) DeleteByCrop(ctx context.Context, cropID int64) error {
	return nil
}

func (r *stubActivityRepo) forCrop(cropID int64) []*entities.ActivityLog {
	var out []*entities.ActivityLog
	for _, entry := range r.entries {
		if entry.CropID == cropID {
			out = append(out, entry)
		}
	}
	return out
}

type stubDetectionRepo struct {
	detections map[int64]*entities.DiseaseDetection
	nextID     int64
}

func newStubDetectionRepo(detections ...*entities.DiseaseDetection) *stubDetectionRepo {
	byID := make(map[int64]*entities.DiseaseDetection, len(detections))
	var maxID int64
	for _, detection := range detections {
		byID[detection.ID] = detection
		if detection.ID > maxID {
			maxID = detection.ID
		}
	}
	return &stubDetectionRepo{detections: byID, nextID: maxID}
}

func (r *stubDetectionRepo) Create(ctx context.Context, detection *entities.DiseaseDetection) error {
	r.nextID++
	detection.ID = r.nextID
	r.detections[detection.ID] = detection
	return nil
}

func (r *stubDetectionRepo) GetByID(ctx context.Context, id int64) (*entities.DiseaseDetection, error) {
	detection, ok := r.detections[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("detection %d not found", id))
	}
	return detection, nil
}

func (r *stubDetectionRepo) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.DiseaseDetection, error) {
	var out []*entities.DiseaseDetection
	for _, detection := range r.detections {
		if detection.CropID == cropID {
			out = append(out, detection)
		}
	}
	return out, nil
}

func (r *stubDetectionRepo) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.DiseaseDetection, error) {
	return r.ListByCrop(ctx, cropID, limit)
}

func (r *stubDetectionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.detections[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("detection %d not found", id))
	}
	delete(r.detections, id)
	return nil
}

func (r *stubDetectionRepo) DeleteByCrop(ctx context.Context, cropID int64) error {
	for id, detection := range r.detections {
		if detection.CropID == cropID {
			delete(r.detections, id)
		}
	}
	return nil
}

type stubWeatherRepo struct {
	alerts []*entities.WeatherAlert
}

func (r *stubWeatherRepo) Create(ctx context.Context, alert *entities.WeatherAlert) error {
	alert.ID = int64(len(r.alerts) + 1)
	r.alerts = append(r.alerts, alert)
	return nil
}

func (r *stubWeatherRepo) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.WeatherAlert, error) {
	var out []*entities.WeatherAlert
	for _, alert := range r.alerts {
		if alert.CropID == cropID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (r *stubWeatherRepo) DeleteByCrop(ctx context.Context, cropID int64) error {
	return nil
}

type stubConversationRepo struct {
	pairs  []*entities.CropConversation
	nextID int64
}

func (r *stubConversationRepo) Create(ctx context.Context, conversation *entities.CropConversation) error {
	r.nextID++
	conversation.ID = r.nextID
	r.pairs = append(r.pairs, conversation)
	return nil
}

func (r *stubConversationRepo) ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropConversation, error) {
	var out []*entities.CropConversation
	for _, pair := range r.pairs {
		if pair.CropID == cropID {
			out = append(out, pair)
		}
	}
	return out, nil
}

func (r *stubConversationRepo) DeleteByCrop(ctx context.Context, cropID int64) error {
	var kept []*entities.CropConversation
	for _, pair := range r.pairs {
		if pair.CropID != cropID {
			kept = append(kept, pair)
		}
	}
	r.pairs = kept
	return nil
}

func (r *stubConversationRepo) Count(ctx context.Context) (int, error) {
	return len(r.pairs), nil
}

func (r *stubConversationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

type stubDiseaseChatRepo struct {
	pairs []*entities.DiseaseChat
}

func (r *stubDiseaseChatRepo) Create(ctx context.Context, chat *entities.DiseaseChat) error {
	chat.ID = int64(len(r.pairs) + 1)
	r.pairs = append(r.pairs, chat)
	return nil
}

func (r *stubDiseaseChatRepo) ListByDetection(ctx context.Context, detectionID int64) ([]*entities.DiseaseChat, error) {
	var out []*entities.DiseaseChat
	for _, pair := range r.pairs {
		if pair.DetectionID == detectionID {
			out = append(out, pair)
		}
	}
	return out, nil
}

func (r *stubDiseaseChatRepo) DeleteByDetection(ctx context.Context, detectionID int64) error {
	var kept []*entities.DiseaseChat
	for _, pair := range r.pairs {
		if pair.DetectionID != detectionID {
			kept = append(kept, pair)
		}
	}
	r.pairs = kept
	return nil
}

// stubModel answers every request with a fixed response or error.
type stubModel struct {
	response string
	err      error
}

func (m *stubModel) Chat(ctx context.Context, messages []providers.ChatMessage, opts providers.ChatOptions) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}
