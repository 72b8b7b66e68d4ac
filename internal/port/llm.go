package port

import "context"

// ImageURL carries an inline data URI or remote URL for a multimodal part.
type ImageURL struct {
	URL string `json:"url"`
}

// ContentPart is one block of a multimodal user message.
type ContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// Message is a single chat-completion message. Content is either a plain
// string or a []ContentPart for multimodal requests.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// TextMessage builds a plain-text message.
func TextMessage(role, content string) Message {
	return Message{Role: role, Content: content}
}

// ChatCompleter abstracts an LLM chat-completion call. Implementations are
// fallible, latent and rate limited; callers decide retry policy.
type ChatCompleter interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}
