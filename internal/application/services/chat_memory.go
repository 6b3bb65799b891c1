package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
)

// CropChatMemory reconstructs and appends crop-scoped conversation turn
// pairs. A user message is staged in memory until the assistant reply
// arrives; only complete pairs are persisted.
type CropChatMemory struct {
	cropID int64
	repo   repositories.CropConversationRepository

	mu         sync.Mutex
	pending    string
	hasPending bool
}

// NewCropChatMemory creates memory bound to one crop
func NewCropChatMemory(cropID int64, repo repositories.CropConversationRepository) *CropChatMemory {
	return &CropChatMemory{cropID: cropID, repo: repo}
}

// Load returns the full transcript, oldest first, each stored pair
// expanding to a user entry followed by an assistant entry.
func (m *CropChatMemory) Load(ctx context.Context) ([]entities.ChatMessage, error) {
	pairs, err := m.repo.ListByCrop(ctx, m.cropID)
	if err != nil {
		return nil, err
	}

	var messages []entities.ChatMessage
	for _, pair := range pairs {
		messages = append(messages, expandStoredField(pair.Message, entities.RoleUser)...)
		messages = append(messages, expandStoredField(pair.Response, entities.RoleAssistant)...)
	}
	return messages, nil
}

// expandStoredField tolerates rows written by an older format that kept a
// JSON array of messages in a single column. Malformed JSON falls back to
// treating the raw value as one message.
func expandStoredField(raw, role string) []entities.ChatMessage {
	if strings.HasPrefix(raw, "[") {
		var parts []string
		if err := json.Unmarshal([]byte(raw), &parts); err == nil {
			messages := make([]entities.ChatMessage, 0, len(parts))
			for _, part := range parts {
				messages = append(messages, entities.ChatMessage{Role: role, Content: part})
			}
			return messages
		}
	}
	return []entities.ChatMessage{{Role: role, Content: raw}}
}

// StageUser buffers a user message until the assistant reply arrives.
func (m *CropChatMemory) StageUser(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = text
	m.hasPending = true
}

// CommitPair persists the staged user message together with the assistant
// reply. Without a staged message it is a no-op, so an assistant message can
// never be stored on its own.
func (m *CropChatMemory) CommitPair(ctx context.Context, assistantText string) error {
	m.mu.Lock()
	if !m.hasPending {
		m.mu.Unlock()
		return nil
	}
	userText := m.pending
	m.pending = ""
	m.hasPending = false
	m.mu.Unlock()

	return m.repo.Create(ctx, &entities.CropConversation{
		CropID:   m.cropID,
		Message:  userText,
		Response: assistantText,
	})
}

// DiscardPending drops a staged user message after a failed assistant call.
func (m *CropChatMemory) DiscardPending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = ""
	m.hasPending = false
}

// Clear deletes all persisted pairs for the crop. Idempotent.
func (m *CropChatMemory) Clear(ctx context.Context) error {
	m.DiscardPending()
	return m.repo.DeleteByCrop(ctx, m.cropID)
}

// DiseaseChatMemory is the detection-scoped counterpart of CropChatMemory,
// giving each detected disease event an independent thread.
type DiseaseChatMemory struct {
	detectionID int64
	repo        repositories.DiseaseChatRepository

	mu         sync.Mutex
	pending    string
	hasPending bool
}

// NewDiseaseChatMemory creates memory bound to one detection
func NewDiseaseChatMemory(detectionID int64, repo repositories.DiseaseChatRepository) *DiseaseChatMemory {
	return &DiseaseChatMemory{detectionID: detectionID, repo: repo}
}

// Load returns the transcript for the detection, oldest first.
func (m *DiseaseChatMemory) Load(ctx context.Context) ([]entities.ChatMessage, error) {
	pairs, err := m.repo.ListByDetection(ctx, m.detectionID)
	if err != nil {
		return nil, err
	}

	var messages []entities.ChatMessage
	for _, pair := range pairs {
		messages = append(messages,
			entities.ChatMessage{Role: entities.RoleUser, Content: pair.Message},
			entities.ChatMessage{Role: entities.RoleAssistant, Content: pair.Response},
		)
	}
	return messages, nil
}

// StageUser buffers a user message until the assistant reply arrives.
func (m *DiseaseChatMemory) StageUser(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = text
	m.hasPending = true
}

// CommitPair persists the staged pair; a no-op without a staged message.
func (m *DiseaseChatMemory) CommitPair(ctx context.Context, assistantText string) error {
	m.mu.Lock()
	if !m.hasPending {
		m.mu.Unlock()
		return nil
	}
	userText := m.pending
	m.pending = ""
	m.hasPending = false
	m.mu.Unlock()

	return m.repo.Create(ctx, &entities.DiseaseChat{
		DetectionID: m.detectionID,
		Message:     userText,
		Response:    assistantText,
	})
}

// DiscardPending drops a staged user message after a failed assistant call.
func (m *DiseaseChatMemory) DiscardPending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = ""
	m.hasPending = false
}

// Clear deletes all persisted pairs for the detection. Idempotent.
func (m *DiseaseChatMemory) Clear(ctx context.Context) error {
	m.DiscardPending()
	return m.repo.DeleteByDetection(ctx, m.detectionID)
}
