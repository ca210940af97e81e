package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/chatstack-io/chatstack/internal/core"
)

type GeminiVision struct {
	client    *genai.Client
	modelName string
}

func NewGeminiVision(ctx context.Context, apiKey, modelName string) (*GeminiVision, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiVision{client: cl, modelName: modelName}, nil
}

func (g *GeminiVision) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// DescribeImage returns a short alt-text style description of the image.
func (g *GeminiVision) DescribeImage(ctx context.Context, data []byte, format string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)

	resp, err := m.GenerateContent(ctx,
		genai.ImageData(format, data),
		genai.Text("Describe this image from a document in one or two sentences."),
	)
	if err != nil {
		return "", fmt.Errorf("gemini vision: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

var _ core.VisionProvider = (*GeminiVision)(nil)
