package textproc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectDocumentTypeGeneralFallback(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog near the riverbank."
	require.Equal(t, TypeGeneral, DetectDocumentType(text))
	require.Equal(t, TypeGeneral, DetectDocumentType(""))
}

func TestDetectDocumentTypeMedical(t *testing.T) {
	text := "Patient presented with fever. Prescribed 10 mg medication daily. Diagnosis: hypertension."
	require.Equal(t, TypeMedical, DetectDocumentType(text))

	cfg := TypeConfig(TypeMedical)
	require.Equal(t, 1500, cfg.ChunkSize)
	require.Equal(t, 300, cfg.Overlap)
}

func TestDetectDocumentTypeTechnical(t *testing.T) {
	text := "The function takes a parameter and returns an interface. The API exposes a method per class."
	require.Equal(t, TypeTechnical, DetectDocumentType(text))
}

func TestDetectDocumentTypeEmail(t *testing.T) {
	text := "From: alice@example.com\nTo: bob@example.com\nSubject: weekly sync\n\nHi Bob,\nsee the attachment.\n> quoted reply"
	require.Equal(t, TypeEmail, DetectDocumentType(text))
}

func TestDetectDocumentTypeDeterministic(t *testing.T) {
	text := "Patient treatment plan with medication at 50 mg."
	first := DetectDocumentType(text)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, DetectDocumentType(text))
	}
}

func TestDetectDocumentTypeTieBreaksByOrder(t *testing.T) {
	// Exactly one conversation indicator and one social-media indicator;
	// on a tie the earlier-declared type must win.
	text := "User 1: see this @handle"
	require.Equal(t, TypeConversation, DetectDocumentType(text))
}
