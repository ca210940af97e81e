package textproc

import "regexp"

// DocumentType classifies the domain/genre of a document's content.
// It drives chunking sizes, cleaning patterns and section detection.
type DocumentType string

const (
	TypeMedical        DocumentType = "medical"
	TypeBusiness       DocumentType = "business"
	TypeTechnical      DocumentType = "technical"
	TypeLegal          DocumentType = "legal"
	TypeAcademic       DocumentType = "academic"
	TypeFinancial      DocumentType = "financial"
	TypeGeneral        DocumentType = "general"
	TypeScientific     DocumentType = "scientific"
	TypeEngineering    DocumentType = "engineering"
	TypeConversation   DocumentType = "conversation"
	TypeSocialMedia    DocumentType = "social-media"
	TypeContentCreator DocumentType = "content-creator"
	TypeTranscript     DocumentType = "transcript"
	TypeEmail          DocumentType = "email"
	TypeReport         DocumentType = "report"
	TypePresentation   DocumentType = "presentation"
	TypeForm           DocumentType = "form"
	TypeMixedContent   DocumentType = "mixed-content"
)

// TableHandling selects how tables found in a document are treated.
type TableHandling string

const (
	TablePreserve TableHandling = "preserve"
	TableConvert  TableHandling = "convert"
	TableIgnore   TableHandling = "ignore"
)

// ChunkOptions tunes one processing run. Zero values mean "use the
// document type's defaults"; explicit values win over them.
type ChunkOptions struct {
	Size                int
	Overlap             int
	PreserveStructure   *bool
	CleanText           *bool
	RemoveHeadersFooter bool
	DocumentType        DocumentType
	EnableOCR           *bool
	ExtractImages       *bool
	TableHandling       TableHandling
}

// ChunkMetadata carries optional per-chunk annotations. A nil/zero field
// means "not computed", not "empty".
type ChunkMetadata struct {
	Page         int          `json:"page,omitempty"`
	Section      string       `json:"section,omitempty"`
	SectionLevel int          `json:"section_level,omitempty"`
	Paragraph    int          `json:"paragraph"`
	DocumentType DocumentType `json:"document_type,omitempty"`
	Confidence   int          `json:"confidence,omitempty"`
	Source       string       `json:"source,omitempty"` // "text", "ocr" or "table"
	TableData    *TableData   `json:"table_data,omitempty"`
	LineRange    *LineRange   `json:"line_range,omitempty"`
	AISummary    string       `json:"ai_summary,omitempty"`
	KeyTopics    []string     `json:"key_topics,omitempty"`
}

// LineRange is a 1-based inclusive span of lines in the cleaned text.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// TextChunk is a contiguous segment of the source text with its byte
// offsets. startIndex is inclusive, endIndex exclusive.
type TextChunk struct {
	Text       string        `json:"text"`
	StartIndex int           `json:"start_index"`
	EndIndex   int           `json:"end_index"`
	Metadata   ChunkMetadata `json:"metadata"`
}

// Section is a detected document heading with its 0-based line index.
type Section struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Start int    `json:"start"`
}

// DocumentStructure holds pages and detected section headers.
type DocumentStructure struct {
	Pages    []string  `json:"pages"`
	Sections []Section `json:"sections"`
}

// DocumentTypeConfig is the fixed chunking/processing profile for one
// document type. Looked up via TypeConfig; never mutated.
type DocumentTypeConfig struct {
	ChunkSize         int
	Overlap           int
	PreserveStructure bool
	EnableOCR         bool
	TableHandling     TableHandling
	CleanPatterns     []*regexp.Regexp
}

// DocumentMetadata aggregates facts about one processed document.
type DocumentMetadata struct {
	Type                DocumentType `json:"type"`
	Pages               int          `json:"pages"`
	TotalWords          int          `json:"total_words"`
	AverageWordsPerPage int          `json:"average_words_per_page"`
	Language            string       `json:"language"`
	Confidence          int          `json:"confidence"`
	HasImages           bool         `json:"has_images"`
	HasTables           bool         `json:"has_tables"`
	HasForms            bool         `json:"has_forms"`
	ExtractionMethod    string       `json:"extraction_method"` // "text", "ocr" or "mixed"
}

// ExtractedImage describes one image pulled out of a document.
type ExtractedImage struct {
	Page       int     `json:"page"`
	Index      int     `json:"index"`
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	AltText    string  `json:"alt_text,omitempty"`
	OCRText    string  `json:"ocr_text,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// TableData describes one extracted table.
type TableData struct {
	Page    int        `json:"page"`
	Index   int        `json:"index"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Headers []string   `json:"headers"`
	Data    [][]string `json:"data"`
	Caption string     `json:"caption,omitempty"`
}

// QualityIssueType enumerates the kinds of extraction problems we report.
type QualityIssueType string

const (
	IssueOCRError       QualityIssueType = "ocr_error"
	IssueStructureError QualityIssueType = "structure_error"
	IssueTextCorruption QualityIssueType = "text_corruption"
	IssueEncoding       QualityIssueType = "encoding_issue"
)

// QualityIssue is one itemized problem found while processing.
type QualityIssue struct {
	Type        QualityIssueType `json:"type"`
	Severity    string           `json:"severity"` // "low", "medium" or "high"
	Description string           `json:"description"`
	Page        int              `json:"page,omitempty"`
	Line        int              `json:"line,omitempty"`
}

// QualityScore is the 0-100 composite quality assessment of a document.
type QualityScore struct {
	Overall          int            `json:"overall"`
	TextQuality      int            `json:"text_quality"`
	StructureQuality int            `json:"structure_quality"`
	OCRAccuracy      int            `json:"ocr_accuracy,omitempty"`
	Issues           []QualityIssue `json:"issues"`
}

// ProcessedDocument is the root aggregate returned by the pipeline.
// It is created once per Process call and never mutated afterward.
type ProcessedDocument struct {
	Text     string           `json:"text"`
	Chunks   []TextChunk      `json:"chunks"`
	Metadata DocumentMetadata `json:"metadata"`
	Images   []ExtractedImage `json:"images"`
	Tables   []TableData      `json:"tables"`
	Quality  QualityScore     `json:"quality"`
}

// Analysis is the result of AI-assisted document analysis. When the AI
// collaborator is unavailable the pipeline fills it from local fallbacks.
type Analysis struct {
	DocumentType         DocumentType `json:"documentType"`
	Summary              string       `json:"summary"`
	KeyTopics            []string     `json:"keyTopics"`
	ContentQuality       int          `json:"contentQuality"`
	Language             string       `json:"language"`
	IntendedAudience     string       `json:"intendedAudience"`
	ExtractionConfidence int          `json:"extractionConfidence"`
}
