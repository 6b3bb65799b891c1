package services

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/providers"
)

// Mocks

type MockCropRepository struct {
	mock.Mock
}

func (m *MockCropRepository) Create(ctx context.Context, crop *entities.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}

func (m *MockCropRepository) GetByID(ctx context.Context, id int64) (*entities.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Crop), args.Error(1)
}

func (m *MockCropRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Crop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Crop), args.Error(1)
}
func (m *MockCropRepository) Update(ctx context.Context, crop *entities.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}
func (m *MockCropRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCropRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockCropRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(ctx context.Context, activity *entities.ActivityLog) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
func (m *MockActivityLogRepository) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.ActivityLog, error) {
	args := m.Called(ctx, cropID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ActivityLog), args.Error(1)
}
func (m *MockActivityLogRepository) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.ActivityLog, error) {
	args := m.Called(ctx, cropID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ActivityLog), args.Error(1)
}
func (m *MockActivityLogRepository) DeleteByCrop(ctx context.Context, cropID int64) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}

type MockDiseaseDetectionRepository struct {
	mock.Mock
}

func (m *MockDiseaseDetectionRepository) Create(ctx context.Context, detection *entities.DiseaseDetection) error {
	args := m.Called(ctx, detection)
	return args.Error(0)
}
func (m *MockDiseaseDetectionRepository) GetByID(ctx context.Context, id int64) (*entities.DiseaseDetection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiseaseDetection), args.Error(1)
}
func (m *MockDiseaseDetectionRepository) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.DiseaseDetection, error) {
	args := m.Called(ctx, cropID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiseaseDetection), args.Error(1)
}
func (m *MockDiseaseDetectionRepository) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.DiseaseDetection, error) {
	args := m.Called(ctx, cropID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiseaseDetection), args.Error(1)
}
func (m *MockDiseaseDetectionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDiseaseDetectionRepository) DeleteByCrop(ctx context.Context, cropID int64) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}

type MockWeatherAlertRepository struct {
	mock.Mock
}

func (m *MockWeatherAlertRepository) Create(ctx context.Context, alert *entities.WeatherAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}
func (m *MockWeatherAlertRepository) ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.WeatherAlert, error) {
	args := m.Called(ctx, cropID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WeatherAlert), args.Error(1)
}
func (m *MockWeatherAlertRepository) DeleteByCrop(ctx context.Context, cropID int64) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockCropCostRepository struct {
	mock.Mock
}

func (m *MockCropCostRepository) Create(ctx context.Context, cost *entities.CropCost) error {
	args := m.Called(ctx, cost)
	return args.Error(0)
}
func (m *MockCropCostRepository) ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropCost, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CropCost), args.Error(1)
}
func (m *MockCropCostRepository) SummaryByCrop(ctx context.Context, cropID int64) (*entities.CostSummary, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CostSummary), args.Error(1)
}
func (m *MockCropCostRepository) TotalAll(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockCropCostRepository) TotalByUser(ctx context.Context, userID string) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockCropCostRepository) DeleteByCrop(ctx context.Context, cropID int64) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}

// memCacheProvider is an in-memory CacheProvider. TTLs are recorded, not
// enforced.
type memCacheProvider struct {
	values map[string][]byte
	ttls   map[string]int
}

func newMemCacheProvider() *memCacheProvider {
	return &memCacheProvider{values: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *memCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.values[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

func (c *memCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.values[key] = value
	c.ttls[key] = expirationSeconds
	return nil
}

func (c *memCacheProvider) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	delete(c.ttls, key)
	return nil
}

func (c *memCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

// memConversationRepo is an in-memory CropConversationRepository. Sequence
// properties (pairing, ordering, idempotent clear) are easier to assert
// against a real append-only store than against call expectations.
type memConversationRepo struct {
	pairs      []*entities.CropConversation
	nextID     int64
	userCounts map[string]int
}

func (r *memConversationRepo) Create(ctx context.Context, conversation *entities.CropConversation) error {
	r.nextID++
	stored := *conversation
	stored.ID = r.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	conversation.ID = stored.ID
	r.pairs = append(r.pairs, &stored)
	return nil
}

func (r *memConversationRepo) ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropConversation, error) {
	var out []*entities.CropConversation
	for _, pair := range r.pairs {
		if pair.CropID == cropID {
			out = append(out, pair)
		}
	}
	return out, nil
}

func (r *memConversationRepo) DeleteByCrop(ctx context.Context, cropID int64) error {
	var kept []*entities.CropConversation
	for _, pair := range r.pairs {
		if pair.CropID != cropID {
			kept = append(kept, pair)
		}
	}
	r.pairs = kept
	return nil
}

func (r *memConversationRepo) Count(ctx context.Context) (int, error) {
	return len(r.pairs), nil
}

func (r *memConversationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return r.userCounts[userID], nil
}

// memDiseaseChatRepo is the detection-scoped counterpart.
type memDiseaseChatRepo struct {
	pairs  []*entities.DiseaseChat
	nextID int64
}

func (r *memDiseaseChatRepo) Create(ctx context.Context, chat *entities.DiseaseChat) error {
	r.nextID++
	stored := *chat
	stored.ID = r.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	chat.ID = stored.ID
	r.pairs = append(r.pairs, &stored)
	return nil
}

func (r *memDiseaseChatRepo) ListByDetection(ctx context.Context, detectionID int64) ([]*entities.DiseaseChat, error) {
	var out []*entities.DiseaseChat
	for _, pair := range r.pairs {
		if pair.DetectionID == detectionID {
			out = append(out, pair)
		}
	}
	return out, nil
}

func (r *memDiseaseChatRepo) DeleteByDetection(ctx context.Context, detectionID int64) error {
	var kept []*entities.DiseaseChat
	for _, pair := range r.pairs {
		if pair.DetectionID != detectionID {
			kept = append(kept, pair)
		}
	}
	r.pairs = kept
	return nil
}

// fakeChatModel answers with a scripted function and records every request.
type fakeChatModel struct {
	respond func(messages []providers.ChatMessage, opts providers.ChatOptions) (string, error)
	calls   [][]providers.ChatMessage
	opts    []providers.ChatOptions
}

func (f *fakeChatModel) Chat(ctx context.Context, messages []providers.ChatMessage, opts providers.ChatOptions) (string, error) {
	f.calls = append(f.calls, messages)
	f.opts = append(f.opts, opts)
	return f.respond(messages, opts)
}
