package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/providers"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

const chatTemperature = 0.7

// cropPipeline binds an assembled context to the crop's conversation memory.
// The mutex serializes chat exchanges per crop so a staged user message
// always pairs with its own assistant reply.
type cropPipeline struct {
	cropName string
	context  string
	memory   *CropChatMemory
	mu       sync.Mutex
}

// CropAIService owns crop-scoped chat. Pipelines are cached per crop for the
// process lifetime; each cache entry holds the context assembled at creation
// and is dropped via Invalidate when the underlying crop state changes.
type CropAIService struct {
	contextService *CropContextService
	conversations  repositories.CropConversationRepository
	model          providers.ChatModelProvider

	pipelines *gocache.Cache
	createMu  sync.Mutex
}

// NewCropAIService creates a new crop AI service
func NewCropAIService(
	contextService *CropContextService,
	conversations repositories.CropConversationRepository,
	model providers.ChatModelProvider,
) *CropAIService {
	return &CropAIService{
		contextService: contextService,
		conversations:  conversations,
		model:          model,
		pipelines:      gocache.New(gocache.NoExpiration, 0),
	}
}

// pipeline returns the cached pipeline for a crop, assembling context once
// on first use. Creation is serialized so concurrent first calls for the
// same crop trigger a single assembly pass.
func (s *CropAIService) pipeline(ctx context.Context, cropID int64) (*cropPipeline, error) {
	key := strconv.FormatInt(cropID, 10)
	if cached, ok := s.pipelines.Get(key); ok {
		return cached.(*cropPipeline), nil
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()
	if cached, ok := s.pipelines.Get(key); ok {
		return cached.(*cropPipeline), nil
	}

	snapshot, err := s.contextService.GetCropContext(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", cropID))
	}

	p := &cropPipeline{
		cropName: snapshot.Crop.Name,
		context:  s.contextService.FormatContext(snapshot),
		memory:   NewCropChatMemory(cropID, s.conversations),
	}
	s.pipelines.Set(key, p, gocache.NoExpiration)
	return p, nil
}

// ChatWithCrop runs one chat exchange: load history, compose the request,
// invoke the model, persist the turn pair. A model failure surfaces to the
// caller and the staged user message is discarded, never half-written.
func (s *CropAIService) ChatWithCrop(ctx context.Context, cropID int64, message string) (string, string, error) {
	if message == "" {
		return "", "", apperrors.NewValidationError("message is required")
	}

	p, err := s.pipeline(ctx, cropID)
	if err != nil {
		return "", "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	history, err := p.memory.Load(ctx)
	if err != nil {
		return "", "", err
	}

	messages := make([]providers.ChatMessage, 0, len(history)+2)
	messages = append(messages, providers.ChatMessage{
		Role:    "system",
		Content: buildCropSystemPrompt(p.context, history),
	})
	for _, msg := range history {
		messages = append(messages, providers.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, providers.ChatMessage{Role: entities.RoleUser, Content: message})

	p.memory.StageUser(message)

	response, err := s.model.Chat(ctx, messages, providers.ChatOptions{Temperature: chatTemperature})
	if err != nil {
		p.memory.DiscardPending()
		return "", "", apperrors.NewExternalError("model call failed", err)
	}

	if err := p.memory.CommitPair(ctx, response); err != nil {
		return "", "", err
	}

	return response, p.cropName, nil
}

// GetCropContext reassembles and renders context fresh, bypassing the
// pipeline cache. Diagnostic surface.
func (s *CropAIService) GetCropContext(ctx context.Context, cropID int64) (*entities.CropContext, string, error) {
	snapshot, err := s.contextService.GetCropContext(ctx, cropID)
	if err != nil {
		return nil, "", err
	}
	if snapshot.IsEmpty() {
		return nil, "", apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", cropID))
	}
	return snapshot, s.contextService.FormatContext(snapshot), nil
}

// ClearHistory deletes all persisted turn pairs for a crop. Idempotent.
func (s *CropAIService) ClearHistory(ctx context.Context, cropID int64) error {
	if cached, ok := s.pipelines.Get(strconv.FormatInt(cropID, 10)); ok {
		return cached.(*cropPipeline).memory.Clear(ctx)
	}
	return s.conversations.DeleteByCrop(ctx, cropID)
}

// Invalidate drops the cached pipeline so the next exchange reassembles
// context. Call after crop-state writes.
func (s *CropAIService) Invalidate(cropID int64) {
	s.pipelines.Delete(strconv.FormatInt(cropID, 10))
}
