package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackAnalysis(t *testing.T) {
	text := "Patient presented with fever. Prescribed 10 mg medication daily. Diagnosis: hypertension."
	analysis := FallbackAnalysis(text)

	require.Equal(t, DetectDocumentType(text), analysis.DocumentType)
	require.Equal(t, TypeMedical, analysis.DocumentType)
	require.Equal(t, 70, analysis.ContentQuality)
	require.Equal(t, 60, analysis.ExtractionConfidence)
	require.Equal(t, "General audience", analysis.IntendedAudience)
	require.True(t, strings.HasSuffix(analysis.Summary, "..."))
	require.NotEmpty(t, analysis.KeyTopics)
}

func TestFallbackAnalysisTruncatesSummary(t *testing.T) {
	analysis := FallbackAnalysis(strings.Repeat("word ", 100))
	require.LessOrEqual(t, len(analysis.Summary), 203) // 200 chars plus ellipsis
}

func TestBasicTopicsSeedsAndCap(t *testing.T) {
	topics := BasicTopics("patient care notes mention recovery progress often", TypeMedical)
	require.NotEmpty(t, topics)
	require.Equal(t, "patient", topics[0]) // seed topics come first
	require.LessOrEqual(t, len(topics), 10)

	// No duplicates even when seeds also appear in the text.
	seen := map[string]bool{}
	for _, topic := range topics {
		require.False(t, seen[topic], "duplicate topic %q", topic)
		seen[topic] = true
	}
}

func TestBasicTopicsSkipsStopWords(t *testing.T) {
	topics := BasicTopics("the and with from about their would could", TypeGeneral)
	for _, topic := range topics {
		require.NotContains(t, []string{"the", "and", "with", "from"}, topic)
	}
}

func TestBasicEntities(t *testing.T) {
	text := "John Smith visited Acme Inc. on January 5, 2024 while touring Canada."
	entities := BasicEntities(text)
	require.NotEmpty(t, entities)
	require.LessOrEqual(t, len(entities), 20)

	byType := map[string][]string{}
	for _, e := range entities {
		byType[e.Type] = append(byType[e.Type], e.Text)
	}
	require.Contains(t, byType["PERSON"], "John Smith")
	require.Contains(t, byType["DATE"], "January 5, 2024")
	require.Contains(t, byType["LOCATION"], "Canada")
}

func TestCalculateReadability(t *testing.T) {
	simple := CalculateReadability("The cat sat on the mat and it was glad. The dog ran to the big red barn today.")
	require.Equal(t, "simple", simple.Complexity)

	empty := CalculateReadability("")
	require.Equal(t, "unknown", empty.Grade)

	require.GreaterOrEqual(t, simple.Score, 0)
	require.LessOrEqual(t, simple.Score, 100)
}
