package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/models"
)

const (
	defaultRemoteModel = "gpt-4o-mini"
	defaultMaxTokens   = 1500
	defaultTemperature = 0.8
)

// Remote talks to any OpenAI-compatible chat completions endpoint. The API
// key arrives through the config at Initialize time and lives only in
// memory for the session.
type Remote struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewRemote() *Remote {
	return &Remote{client: &http.Client{Timeout: 60 * time.Second}}
}

func (r *Remote) Provider() models.AIProvider { return models.AIProviderRemote }

func (r *Remote) Ready() bool {
	return r.endpoint != "" && r.apiKey != ""
}

func (r *Remote) Initialize(cfg models.AIConfig) error {
	r.endpoint = strings.TrimRight(cfg.RemoteEndpoint, "/")
	r.apiKey = cfg.RemoteApiKey
	r.model = cfg.RemoteModel
	if r.model == "" {
		r.model = defaultRemoteModel
	}
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (r *Remote) Generate(ctx context.Context, req *Request) (*Response, error) {
	if !r.Ready() {
		return nil, fmt.Errorf("%w: remote endpoint and api key required", common.ErrAINotReady)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	body, err := json.Marshal(chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reaching ai endpoint: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: ai provider rejected the api key", common.ErrAuthInvalid)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: ai provider throttled the request", common.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ai request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding ai response: %w", err)
	}
	if len(data.Choices) == 0 || data.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("ai returned an empty response")
	}

	return &Response{
		Content:    data.Choices[0].Message.Content,
		TokensUsed: data.Usage.TotalTokens,
		Provider:   models.AIProviderRemote,
		Model:      r.model,
	}, nil
}

func (r *Remote) Dispose() {
	r.apiKey = ""
}
