package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"farmassist-backend/internal/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"

	visionTimeout = 30 * time.Second
)

// Client implements llm.VisionClient and llm.ChatClient against the Gemini
// generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient constructs a Gemini client. The model defaults to
// gemini-1.5-flash; the per-call budget defaults to 30 seconds and can be
// overridden with GEMINI_TIMEOUT_SECONDS.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	timeout := visionTimeout
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generation_config,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float32 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// AnalyzeImage sends the fixed crop-disease prompt plus the inline image and
// returns the model's raw text reply. A single attempt is made; failures are
// reported as *llm.APIError or *llm.TimeoutError.
func (c *Client) AnalyzeImage(ctx context.Context, img llm.Image) (string, error) {
	mimeType := strings.TrimSpace(img.MimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: visionPrompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(img.Data),
				}},
			},
		}},
		GenerationConfig: &generationConfig{
			Temperature: 0.2,
			TopK:        32,
			TopP:        1,
		},
	}

	return c.generate(ctx, req)
}

// Chat sends the system prompt, prior turns, and the new message as a single
// conversation. The system prompt rides as the leading model turn, which is
// how the v1 API accepts instruction text without a system role.
func (c *Client) Chat(ctx context.Context, chat llm.ChatRequest) (string, error) {
	contents := make([]content, 0, len(chat.History)+2)
	if strings.TrimSpace(chat.System) != "" {
		contents = append(contents, content{Role: "model", Parts: []part{{Text: chat.System}}})
	}
	for _, m := range chat.History {
		role := "model"
		if m.FromUser {
			role = "user"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: chat.Message}}})

	req := generateRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature:     0.6,
			MaxOutputTokens: 800,
		},
	}

	return c.generate(ctx, req)
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", &llm.TimeoutError{Budget: c.timeout}
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &llm.APIError{Status: resp.StatusCode, Message: upstreamMessage(body, resp.Status)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &llm.APIError{Message: fmt.Sprintf("response parse: %v", err)}
	}
	if parsed.Error != nil {
		return "", &llm.APIError{Status: resp.StatusCode, Message: parsed.Error.Message}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &llm.APIError{Message: "unexpected response format: missing candidate text"}
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", &llm.APIError{Message: "unexpected response format: empty candidate text"}
	}
	return text, nil
}

func upstreamMessage(body []byte, fallback string) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return fallback
}

var (
	_ llm.VisionClient = (*Client)(nil)
	_ llm.ChatClient   = (*Client)(nil)
)
