// Package ai abstracts story generation behind a single adapter contract.
// Callers never know which provider is active; they hand over an already
// anonymized prompt and get narrative text back.
package ai

import (
	"context"

	"github.com/dmitrijs2005/journly/internal/models"
)

// Request carries one generation call. UserPrompt is expected to be
// anonymized before it reaches any adapter.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int     // 0 means adapter default
	Temperature  float64 // 0 means adapter default
}

type Response struct {
	Content    string
	TokensUsed int
	Provider   models.AIProvider
	Model      string
}

// Adapter is the provider contract. Initialize must be called before
// Generate; using an uninitialized adapter fails with ErrAINotReady.
type Adapter interface {
	Provider() models.AIProvider
	Ready() bool
	Initialize(cfg models.AIConfig) error
	Generate(ctx context.Context, req *Request) (*Response, error)
	Dispose()
}

// New returns the adapter for the configured provider. Unknown values fall
// back to the local mock so story generation still works offline.
func New(provider models.AIProvider) Adapter {
	if provider == models.AIProviderRemote {
		return NewRemote()
	}
	return NewMock()
}
