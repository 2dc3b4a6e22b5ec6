package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"farmassist-backend/internal/llm"
	"farmassist-backend/internal/plaintext"
	"farmassist-backend/internal/shared/metrics"
	"farmassist-backend/internal/shared/telemetry"
)

// Service forwards farmer questions to the language model and cleans the
// reply for low-literacy readers.
type Service struct {
	Repo       Repo
	LLM        llm.ChatClient
	Normalizer *plaintext.Normalizer
}

// Respond answers one message given the prior conversation. Persistence is
// best effort: a failed insert logs and the farmer still gets the reply.
func (s *Service) Respond(ctx context.Context, userID, message, language string, history []llm.Message) (string, error) {
	if message == "" {
		return "", errors.New("message is required")
	}
	if s.LLM == nil {
		return "", errors.New("chat model is not configured")
	}
	metrics.IncChatRequest()

	reply, err := s.LLM.Chat(ctx, llm.ChatRequest{
		System:  SystemPrompt(language),
		History: history,
		Message: message,
	})
	if err != nil {
		telemetry.Error("chat.llm.failed", map[string]any{
			"language": language,
			"err":      err.Error(),
		})
		return "", err
	}
	reply = s.Normalizer.Normalize(reply)

	if s.Repo != nil {
		entry := Entry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Message:   message,
			Response:  reply,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Repo.Create(ctx, entry); err != nil {
			telemetry.Error("chat.persist_failed", map[string]any{
				"user_id": userID,
				"err":     err.Error(),
			})
		}
	}
	return reply, nil
}
