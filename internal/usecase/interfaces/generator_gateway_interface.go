package interfaces

// IGeneratorGateway abstracts the external multimodal model provider (e.g.
// Anthropic). The estimator sends it a system briefing plus a user turn of
// image and text blocks and gets back the raw response text; extracting the
// structured estimate from that text is the caller's problem.

import "context"

// ContentBlock is one piece of a user turn, either text or an inline image.
type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

// ImageSource carries a base64 image in the provider's wire shape.
type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type GeneratorMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// GenerationRequest is one full provider call: the system briefing, an
// output budget and the conversation turns.
type GenerationRequest struct {
	System    string
	MaxTokens int
	Messages  []GeneratorMessage
}

type IGeneratorGateway interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
