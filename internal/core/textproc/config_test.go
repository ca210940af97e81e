package textproc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allDocumentTypes = []DocumentType{
	TypeMedical, TypeBusiness, TypeTechnical, TypeLegal, TypeAcademic,
	TypeFinancial, TypeGeneral, TypeScientific, TypeEngineering,
	TypeConversation, TypeSocialMedia, TypeContentCreator, TypeTranscript,
	TypeEmail, TypeReport, TypePresentation, TypeForm, TypeMixedContent,
}

func TestTypeConfigCoversAllTypes(t *testing.T) {
	for _, dt := range allDocumentTypes {
		cfg := TypeConfig(dt)
		require.Positive(t, cfg.ChunkSize, "type %s", dt)
		require.Positive(t, cfg.Overlap, "type %s", dt)
		require.Less(t, cfg.Overlap, cfg.ChunkSize, "type %s", dt)
	}
}

func TestTypeConfigValues(t *testing.T) {
	legal := TypeConfig(TypeLegal)
	require.Equal(t, 1200, legal.ChunkSize)
	require.Equal(t, 400, legal.Overlap)
	require.True(t, legal.PreserveStructure)

	general := TypeConfig(TypeGeneral)
	require.Equal(t, 2000, general.ChunkSize)
	require.Equal(t, 200, general.Overlap)
	require.Empty(t, general.CleanPatterns)
}

func TestTypeConfigUnknownPanics(t *testing.T) {
	require.Panics(t, func() { TypeConfig(DocumentType("nonsense")) })
}
