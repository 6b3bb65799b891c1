package services

import (
	"fmt"
	"strings"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// historyWindow caps how many prior messages are rendered into the
// instruction transcript.
const historyWindow = 10

const cropSystemPrompt = `You are an expert agricultural AI assistant specializing in crop management. You have access to comprehensive information about a specific crop and its recent history.

IMPORTANT:
- Keep responses very short - maximum 2-3 sentences. Be direct and conversational like texting a friend.
- ONLY answer questions related to farming, agriculture, crops, plants, soil, weather, pests, diseases, irrigation, fertilizers, and crop management.
- If asked about anything unrelated to farming/agriculture (like human health, general topics, etc.), politely redirect: "I'm your crop assistant - let's focus on your farming needs! What would you like to know about your crop?"

Your role is to provide personalized advice based on the specific crop's current state and history. Reference recent activities, disease detections, and weather conditions when relevant. Give actionable recommendations for crop care.

CROP CONTEXT:
%s

Current conversation:
%s`

const diseaseAnalysisPrompt = `You are a plant pathologist. Analyze %s images for diseases.

Crop Context: %s

Respond in JSON format with very short, human-like answers:
{
    "disease": "Disease name or 'Healthy Plant'",
    "cause": "Short cause (5-8 words max)",
    "confidence": 85,
    "severity": "Low/Moderate/High or 'None'",
    "precautions": ["Brief tip", "Brief tip"],
    "treatment": ["Simple action", "Simple action"]
}

Keep everything very short and conversational.`

const diseaseChatPrompt = `You are a plant pathologist expert on %s.

Crop Context: %s
Analysis Context: %s

The user has a %s plant with analysis result: %s.

IMPORTANT: Keep responses very short - maximum 2-3 sentences. Be direct and concise.

Answer briefly and to the point. No long explanations.`

// buildCropSystemPrompt merges the advisor instruction with the rendered
// crop context and the recent transcript.
func buildCropSystemPrompt(cropContext string, history []entities.ChatMessage) string {
	return fmt.Sprintf(cropSystemPrompt, cropContext, formatTranscript(history, historyWindow))
}

// buildDiseaseAnalysisPrompt produces the instruction for multimodal image
// analysis with its strict JSON reply contract.
func buildDiseaseAnalysisPrompt(cropName, cropContext string) string {
	return fmt.Sprintf(diseaseAnalysisPrompt, cropName, cropContext)
}

// buildDiseaseChatPrompt produces the specialist instruction for follow-up
// questions about a specific diagnosed disease.
func buildDiseaseChatPrompt(cropName, cropContext, analysisContext, diseaseName string) string {
	return fmt.Sprintf(diseaseChatPrompt, cropName, cropContext, analysisContext, cropName, diseaseName)
}

// formatTranscript renders the last max messages as role-tagged lines.
func formatTranscript(messages []entities.ChatMessage, max int) string {
	if len(messages) > max {
		messages = messages[len(messages)-max:]
	}
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, msg.Role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
