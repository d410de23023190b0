package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// GeminiService implements the adapter.ChatService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Reply produces an assistant answer for the given prompt.
func (s *GeminiService) Reply(ctx context.Context, prompt *adapter.ChatPrompt) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(s.systemPrompt(prompt))},
	}

	session := model.StartChat()
	session.History = buildHistory(prompt.History)

	resp, err := session.SendMessage(ctx, genai.Text(prompt.Message))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	reply := extractText(resp)
	if reply == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return reply, nil
}

// systemPrompt frames the assistant as a personal finance helper, grounded
// in the user's own numbers.
func (s *GeminiService) systemPrompt(prompt *adapter.ChatPrompt) string {
	var sb strings.Builder

	sb.WriteString("You are SpaarBot, a friendly personal finance assistant inside a Telegram Mini App. ")
	sb.WriteString("Answer briefly and concretely, in plain text without markdown. ")
	sb.WriteString("Base every statement about the user's finances on the context below; never invent numbers. ")
	sb.WriteString("You cannot move money or change data; for that, point the user to the app's screens.\n")

	if prompt.LanguageCode != "" {
		fmt.Fprintf(&sb, "Answer in the language with ISO code %q.\n", prompt.LanguageCode)
	}

	if prompt.FinanceContext != "" {
		sb.WriteString("\nThe user's recent finances:\n")
		sb.WriteString(prompt.FinanceContext)
	}

	return sb.String()
}

// buildHistory converts stored chat messages into Gemini chat history.
func buildHistory(messages []*entity.ChatMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == entity.ChatRoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
