package core

import "context"

// EmbeddingProvider turns texts into vectors. dim of 0 uses the model's
// default output dimensionality.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string, dim int) ([][]float32, error)
}

// LLMProvider generates a completion for a system/user prompt pair.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// VisionProvider describes an image given as raw bytes with its MIME
// subtype ("png", "jpeg", ...).
type VisionProvider interface {
	DescribeImage(ctx context.Context, data []byte, format string) (string, error)
}
