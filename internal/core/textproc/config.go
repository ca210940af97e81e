package textproc

import (
	"fmt"
	"regexp"
)

// typeConfigs holds the fixed processing profile for every document type.
// Values are tuned per domain: legal keeps small chunks with heavy overlap
// to preserve clause boundaries, academic allows long coherent sections.
var typeConfigs = map[DocumentType]DocumentTypeConfig{
	TypeMedical: {
		ChunkSize:         1500,
		Overlap:           300,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:confidential|proprietary|internal.?use.?only)\b`),
			regexp.MustCompile(`(?i)Patient ID:\s*\S+`),
			regexp.MustCompile(`(?i)MRN:\s*\S+`),
			regexp.MustCompile(`(?i)DOB:\s*\d{1,2}/\d{1,2}/\d{2,4}`),
		},
	},
	TypeBusiness: {
		ChunkSize:         2000,
		Overlap:           200,
		PreserveStructure: true,
		EnableOCR:         false,
		TableHandling:     TableConvert,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:confidential|proprietary|internal.?use.?only)\b`),
			regexp.MustCompile(`(?i)©\s*\d{4}\s*\S+`),
			regexp.MustCompile(`(?i)All rights reserved`),
		},
	},
	TypeTechnical: {
		ChunkSize:         1800,
		Overlap:           250,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:TODO|FIXME|HACK|XXX)\b`),
			regexp.MustCompile(`(?i)console\.(?:log|warn|error)\([^)]*\)`),
		},
	},
	TypeLegal: {
		ChunkSize:         1200,
		Overlap:           400,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:attorney.?client.?privilege|work.?product|confidential)\b`),
			regexp.MustCompile(`(?i)©\s*\d{4}\s*\S+`),
			regexp.MustCompile(`(?i)All rights reserved`),
		},
	},
	TypeAcademic: {
		ChunkSize:         2200,
		Overlap:           200,
		PreserveStructure: true,
		EnableOCR:         false,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:peer.?review|accepted|published|copyright)\b`),
			regexp.MustCompile(`(?i)DOI:\s*\S+`),
			regexp.MustCompile(`(?i)ISBN:\s*\S+`),
		},
	},
	TypeFinancial: {
		ChunkSize:         1500,
		Overlap:           300,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:unaudited|preliminary|draft)\b`),
			regexp.MustCompile(`\$\s*\d+(?:,\d{3})*(?:\.\d{2})?`), // specific dollar amounts
			regexp.MustCompile(`(?i)Account #:\s*\S+`),
		},
	},
	TypeScientific: {
		ChunkSize:         2000,
		Overlap:           250,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:experimental|preliminary|draft)\b`),
			regexp.MustCompile(`(?i)Patent \d+`),
		},
	},
	TypeEngineering: {
		ChunkSize:         1800,
		Overlap:           200,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:proprietary|confidential|internal)\b`),
			regexp.MustCompile(`(?i)Drawing #:\s*\S+`),
		},
	},
	TypeGeneral: {
		ChunkSize:         2000,
		Overlap:           200,
		PreserveStructure: true,
		EnableOCR:         false,
		TableHandling:     TableConvert,
	},
	TypeConversation: {
		ChunkSize:         1200,
		Overlap:           400,
		PreserveStructure: true,
		EnableOCR:         false,
		TableHandling:     TableIgnore,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bUser\s+\d+:`),
			regexp.MustCompile(`\[\d{1,2}:\d{2}(:\d{2})?\]`), // timestamps
		},
	},
	TypeSocialMedia: {
		ChunkSize:         800,
		Overlap:           200,
		PreserveStructure: false,
		EnableOCR:         true,
		TableHandling:     TableIgnore,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`[@#]\w+`),
			regexp.MustCompile(`https?://\S+`),
		},
	},
	TypeContentCreator: {
		ChunkSize:         1500,
		Overlap:           300,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TableConvert,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:Like and subscribe|Comment below|Follow me|Check out my)\b`),
			regexp.MustCompile(`(?i)\b(?:smash that like button|hit the bell|notification squad)\b`),
		},
	},
	TypeTranscript: {
		ChunkSize:         1800,
		Overlap:           350,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TableIgnore,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\[\s*(?:music|applause|laughter|silence|inaudible)\s*\]`),
			regexp.MustCompile(`\[\d{1,2}:\d{2}(:\d{2})?\]`),
		},
	},
	TypeEmail: {
		ChunkSize:         1000,
		Overlap:           300,
		PreserveStructure: true,
		EnableOCR:         false,
		TableHandling:     TableConvert,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^>\s*`),
			regexp.MustCompile(`(?im)^(?:From|To|Cc|Bcc|Subject|Date):.*$`),
		},
	},
	TypeReport: {
		ChunkSize:         2200,
		Overlap:           250,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:Confidential|Proprietary|Internal Use Only)\b`),
			regexp.MustCompile(`(?i)Report (?:ID|Number|#)?:?\s*\w+`),
		},
	},
	TypePresentation: {
		ChunkSize:         1000,
		Overlap:           200,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TableConvert,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\[CLICK\]|\[NEXT\]|\[PREVIOUS\]|\[TRANSITION\]`),
			regexp.MustCompile(`(?i)Slide \d+`),
		},
	},
	TypeForm: {
		ChunkSize:         800,
		Overlap:           150,
		PreserveStructure: false,
		EnableOCR:         true,
		TableHandling:     TablePreserve,
		CleanPatterns: []*regexp.Regexp{
			regexp.MustCompile(`_{5,}`),
			regexp.MustCompile(`\[\s*\]|\[x\]|\[X\]`),
		},
	},
	TypeMixedContent: {
		ChunkSize:         1600,
		Overlap:           300,
		PreserveStructure: true,
		EnableOCR:         true,
		TableHandling:     TableConvert,
	},
}

// TypeConfig returns the fixed processing profile for a document type.
// An unknown tag is a programming error, so it panics rather than
// returning a zero config that would silently produce bad chunks.
func TypeConfig(t DocumentType) DocumentTypeConfig {
	cfg, ok := typeConfigs[t]
	if !ok {
		panic(fmt.Sprintf("textproc: no config for document type %q", t))
	}
	return cfg
}
