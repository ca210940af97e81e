package textproc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractStructureGenericHeadings(t *testing.T) {
	text := "INTRODUCTION\n" +
		"Some opening prose.\n" +
		"1. Background\n" +
		"More prose here.\n" +
		"1.1 Details\n" +
		"Even more prose.\n" +
		"Summary Notes:\n" +
		"Closing prose."

	structure := ExtractStructure(text, TypeGeneral)
	require.Len(t, structure.Sections, 4)

	require.Equal(t, Section{Title: "INTRODUCTION", Level: 1, Start: 0}, structure.Sections[0])
	require.Equal(t, Section{Title: "1. Background", Level: 2, Start: 2}, structure.Sections[1])
	require.Equal(t, Section{Title: "1.1 Details", Level: 3, Start: 4}, structure.Sections[2])
	require.Equal(t, Section{Title: "Summary Notes:", Level: 4, Start: 6}, structure.Sections[3])
}

func TestExtractStructureTypedSections(t *testing.T) {
	text := "Patient History\n" +
		"Presented last week.\n" +
		"Chief Complaint\n" +
		"Persistent headache.\n" +
		"RANDOM CAPS LINE\n" +
		"Diagnosis\n" +
		"Migraine."

	structure := ExtractStructure(text, TypeMedical)
	require.Len(t, structure.Sections, 3)
	require.Equal(t, Section{Title: "Patient History", Level: 1, Start: 0}, structure.Sections[0])
	require.Equal(t, Section{Title: "Chief Complaint", Level: 2, Start: 2}, structure.Sections[1])
	require.Equal(t, Section{Title: "Diagnosis", Level: 1, Start: 5}, structure.Sections[2])

	// Typed documents use only their keyword vocabulary; generic caps
	// heuristics must not fire.
	for _, s := range structure.Sections {
		require.NotEqual(t, "RANDOM CAPS LINE", s.Title)
	}
}

func TestExtractStructurePages(t *testing.T) {
	structure := ExtractStructure("first page\fsecond page\fthird page", TypeGeneral)
	require.Equal(t, []string{"first page", "second page", "third page"}, structure.Pages)

	structure = ExtractStructure("before the break\nPage 2\nafter the break", TypeGeneral)
	require.Len(t, structure.Pages, 2)
}

func TestExtractStructureEmpty(t *testing.T) {
	structure := ExtractStructure("", TypeGeneral)
	require.Empty(t, structure.Pages)
	require.Empty(t, structure.Sections)
}
