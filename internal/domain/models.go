package domain

import "time"

// MessageRole represents the role in a backend conversation
type MessageRole string

const (
	// RoleSystem represents a system message
	RoleSystem MessageRole = "system"
	// RoleUser represents a user message
	RoleUser MessageRole = "user"
)

// Message represents a role-tagged message in the backend exchange
type Message struct {
	Role    MessageRole
	Content string
}

// CompletionRequest represents a non-streaming completion request
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int      // 0 = use backend default
	Temperature *float64 // nil = use backend default
}

// CompletionResponse represents the backend response
type CompletionResponse struct {
	Content string
	Model   string
}

// Metadata is the diagnostic record persisted next to each cached document.
// Its absence or corruption never blocks serving the HTML artifact.
type Metadata struct {
	URL       string    `json:"url"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}
