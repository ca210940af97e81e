package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateTextQualityCleanText(t *testing.T) {
	q := ValidateTextQuality("This is a perfectly normal sentence with reasonable words in it.")
	require.True(t, q.IsValid)
	require.Equal(t, 100, q.Score)
	require.Empty(t, q.Issues)
}

func TestValidateTextQualityRepeatedCharacters(t *testing.T) {
	q := ValidateTextQuality("Normal words then aaaaaaa artifact here.")
	require.Equal(t, 85, q.Score)
	require.Contains(t, q.Issues, "Repeated characters detected (possible OCR artifacts)")
}

func TestValidateTextQualityLongWords(t *testing.T) {
	word := "abcdefghijabcdefghijabcdefghij"
	q := ValidateTextQuality(strings.Repeat(word+" ", 6))
	require.Equal(t, 75, q.Score)
	require.Contains(t, q.Issues, "Many very long words detected (possible text corruption)")
}

func TestValidateTextQualityMeaninglessText(t *testing.T) {
	q := ValidateTextQuality(".,;:.,;:")
	require.Equal(t, 70, q.Score)
	require.True(t, q.IsValid) // 70 is the inclusive validity threshold
	require.Contains(t, q.Issues, "Low ratio of meaningful characters")
}

func TestValidateTextQualityBounds(t *testing.T) {
	for _, text := range []string{"", "a", "!!!!!!!!!!", strings.Repeat(" ", 1000)} {
		q := ValidateTextQuality(text)
		require.GreaterOrEqual(t, q.Score, 0)
		require.LessOrEqual(t, q.Score, 100)
	}
}

func TestDetectLanguage(t *testing.T) {
	require.Equal(t, "english", DetectLanguage("The report was sent to the team for review and the update followed."))
	require.Equal(t, "spanish", DetectLanguage("El informe es para la empresa y se entrega sin demora con los datos."))
	require.Equal(t, "unknown", DetectLanguage("zzzz qqqq xxxx"))
	require.Equal(t, "unknown", DetectLanguage(""))
}

func TestDocumentConfidence(t *testing.T) {
	medical := "The patient diagnosis requires treatment. The medication and prescription were clinical decisions. " +
		"The patient responded to treatment quickly and the clinical team tracked the diagnosis carefully."
	conf := DocumentConfidence(medical, TypeMedical)
	require.GreaterOrEqual(t, conf, 80) // vocabulary boost caps at +30

	unrelated := DocumentConfidence("nothing relevant here", TypeMedical)
	require.Greater(t, conf, unrelated)

	require.LessOrEqual(t, DocumentConfidence(medical, TypeMedical), 100)
}

func TestChunkConfidence(t *testing.T) {
	short := ChunkConfidence("tiny chunk", TypeGeneral)
	long := ChunkConfidence("This chunk carries enough distinct words that the scorer treats the content as substantial and varied prose.", TypeGeneral)
	require.Greater(t, long, short)

	repetitive := ChunkConfidence(strings.Repeat("word word word other thing ", 10), TypeGeneral)
	require.Less(t, repetitive, long)

	for _, v := range []int{short, long, repetitive} {
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, 100)
	}
}

func TestDetectForms(t *testing.T) {
	form := "Name: ________\nDate: ________\n[ ] Yes  [ ] No"
	require.True(t, DetectForms(form))

	require.False(t, DetectForms("Just a plain paragraph about nothing in particular."))
	require.False(t, DetectForms(""))
}

func TestCalculateDocumentQualityNoChunks(t *testing.T) {
	meta := DocumentMetadata{Confidence: 50}
	q := CalculateDocumentQuality("This is a perfectly normal sentence with reasonable words in it.", nil, meta)

	require.Equal(t, 100, q.TextQuality)
	require.Equal(t, 30, q.StructureQuality)
	require.Equal(t, 64, q.Overall) // 0.4*100 + 0.3*30 + 0.3*50

	require.Len(t, q.Issues, 1)
	require.Equal(t, IssueStructureError, q.Issues[0].Type)
	require.Equal(t, "high", q.Issues[0].Severity)
}

func TestCalculateDocumentQualityShortChunks(t *testing.T) {
	chunks := []TextChunk{
		{Text: strings.Repeat("long enough chunk body ", 5)},
		{Text: "too short"},
	}
	meta := DocumentMetadata{Confidence: 50}
	q := CalculateDocumentQuality("This is a perfectly normal sentence with reasonable words in it.", chunks, meta)

	require.Equal(t, 60, q.StructureQuality)
	found := false
	for _, issue := range q.Issues {
		if issue.Description == "Some chunks are too short" {
			require.Equal(t, "medium", issue.Severity)
			found = true
		}
	}
	require.True(t, found)
}

func TestCalculateDocumentQualityBounds(t *testing.T) {
	meta := DocumentMetadata{Confidence: 100}
	chunks := []TextChunk{{Text: strings.Repeat("solid chunk body text ", 5)}}
	q := CalculateDocumentQuality("This is a perfectly normal sentence with reasonable words in it.", chunks, meta)
	require.LessOrEqual(t, q.Overall, 100)
	require.GreaterOrEqual(t, q.Overall, 0)
}
