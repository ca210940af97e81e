package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chatstack-io/chatstack/internal/core"
	"github.com/chatstack-io/chatstack/internal/core/textproc"
)

const analyzerSystemPrompt = `You are a document analysis service. Respond with a single JSON object
and nothing else. Fields:
  documentType: one of medical, business, technical, legal, academic,
    financial, general, scientific, engineering, conversation, social-media,
    content-creator, transcript, email, report, presentation, form,
    mixed-content
  summary: 2-3 sentence summary
  keyTopics: up to 10 topic strings
  contentQuality: integer 0-100
  language: lowercase language name
  intendedAudience: short phrase
  extractionConfidence: integer 0-100`

// analyzerSampleLimit caps how much document text is sent per analysis
// request.
const analyzerSampleLimit = 8000

// GeminiAnalyzer implements textproc.Analyzer on top of any LLMProvider.
// Callers treat every error as "analysis unavailable"; the textproc
// pipeline then falls back to its local heuristics.
type GeminiAnalyzer struct {
	llm core.LLMProvider
}

func NewGeminiAnalyzer(llm core.LLMProvider) *GeminiAnalyzer {
	return &GeminiAnalyzer{llm: llm}
}

var _ textproc.Analyzer = (*GeminiAnalyzer)(nil)

func (a *GeminiAnalyzer) Analyze(ctx context.Context, text string, images []textproc.ExtractedImage) (*textproc.Analysis, error) {
	sample := text
	if len(sample) > analyzerSampleLimit {
		sample = sample[:analyzerSampleLimit]
	}

	var prompt strings.Builder
	prompt.WriteString("Analyze this document:\n\n")
	prompt.WriteString(sample)
	if n := len(images); n > 0 {
		fmt.Fprintf(&prompt, "\n\nThe document also contains %d image(s).", n)
	}

	raw, err := a.llm.Generate(ctx, analyzerSystemPrompt, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("analysis request: %w", err)
	}

	var analysis textproc.Analysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("unparseable analysis response: %w", err)
	}
	return &analysis, nil
}

// extractJSON strips markdown code fences and surrounding prose that
// models sometimes wrap around the JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
