package entities

import "time"

// Message roles for chat transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged entry of a conversation transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CropConversation stores one user/assistant turn pair scoped to a crop.
// Pairs are only ever appended or bulk-deleted; a pair always carries both
// sides of the exchange.
type CropConversation struct {
	ID          int64     `json:"id" db:"id"`
	CropID      int64     `json:"crop_id" db:"crop_id"`
	Message     string    `json:"message" db:"message"`
	Response    string    `json:"response" db:"response"`
	ContextUsed string    `json:"context_used" db:"context_used"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DiseaseChat stores one user/assistant turn pair scoped to a disease
// detection, giving each detected disease event its own thread.
type DiseaseChat struct {
	ID          int64     `json:"id" db:"id"`
	DetectionID int64     `json:"detection_id" db:"detection_id"`
	Message     string    `json:"message" db:"message"`
	Response    string    `json:"response" db:"response"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
