package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bargainhunt/backend/internal/models"
)

var emailSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"subject": map[string]any{"type": "STRING"},
		"body":    map[string]any{"type": "STRING"},
	},
	"required": []string{"subject", "body"},
}

// EmailService drafts discount-request e-mails
type EmailService struct {
	client *GeminiClient
}

// NewEmailService creates an e-mail drafting service
func NewEmailService(client *GeminiClient) *EmailService {
	return &EmailService{client: client}
}

// DraftEmail asks the model for a subject and body addressed to the store
func (s *EmailService) DraftEmail(ctx context.Context, storeName string) (*models.EmailDraft, error) {
	prompt, err := RenderEmailPrompt(storeName)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	text, err := s.client.GenerateText(ctx, prompt, nil, &GenerationConfig{
		Temperature:      0.7,
		ResponseMIMEType: "application/json",
		ResponseSchema:   emailSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("email draft failed: %w", err)
	}

	return parseEmailResponse(text)
}

func parseEmailResponse(content string) (*models.EmailDraft, error) {
	content = cleanJSONResponse(content)

	var draft struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		extracted := extractJSON(content)
		if extracted == "" || json.Unmarshal([]byte(extracted), &draft) != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	draft.Subject = strings.TrimSpace(draft.Subject)
	draft.Body = strings.TrimSpace(draft.Body)
	if draft.Subject == "" || draft.Body == "" {
		return nil, fmt.Errorf("%w: missing subject or body", ErrMalformedResponse)
	}
	return &models.EmailDraft{Subject: draft.Subject, Body: draft.Body}, nil
}
