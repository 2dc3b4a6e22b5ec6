package llm

import (
	"context"
	"fmt"
	"time"
)

// Image carries raw image bytes plus the declared mime type of the upload.
type Image struct {
	Data     []byte
	MimeType string
}

// VisionClient abstracts vision model providers for crop image analysis.
// AnalyzeImage returns the model's raw text reply.
type VisionClient interface {
	AnalyzeImage(ctx context.Context, img Image) (string, error)
}

// Message is one turn of a conversation.
type Message struct {
	Content  string
	FromUser bool
}

// ChatRequest captures the inputs for a conversational completion.
type ChatRequest struct {
	System  string
	History []Message
	Message string
}

// ChatClient abstracts conversational model providers.
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// APIError reports an upstream model API failure, including a malformed
// success envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("model api error: %s", e.Message)
	}
	return fmt.Sprintf("model api error: status %d: %s", e.Status, e.Message)
}

// TimeoutError reports that a model call exceeded its client-side budget.
type TimeoutError struct {
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model request timed out after %s", e.Budget)
}
