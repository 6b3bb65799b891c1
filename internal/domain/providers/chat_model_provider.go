package providers

import (
	"context"
)

// ChatMessage is one role-tagged message sent to the language model. A
// message may carry a base64-encoded image alongside its text, in which case
// the request becomes multimodal.
type ChatMessage struct {
	Role        string
	Content     string
	ImageBase64 string
}

// ChatOptions tunes a single model invocation. Model overrides the
// provider's default when set.
type ChatOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatModelProvider executes a composed request against a remote language
// model and returns the generated text. Implementations make a single
// attempt per call; any failure is terminal for that call.
type ChatModelProvider interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)
}
