package textproc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Acquisition and empty-result failures are the only errors the pipeline
// surfaces; enrichment failures degrade to fallback values silently.
var (
	// ErrNoExtractableText means text acquisition from a buffer failed
	// outright (and OCR, when enabled, did not rescue it).
	ErrNoExtractableText = errors.New("file contained no extractable text")

	// ErrNoContent means the source yielded no chunks above the minimum
	// length: an empty or unusable file, not a pipeline bug.
	ErrNoContent = errors.New("document contains no extractable content")
)

// ExtractOptions tunes buffer extraction.
type ExtractOptions struct {
	EnableOCR     bool
	ExtractImages bool
}

// PDFExtraction is what a buffer extractor returns. A zero Pages count
// with empty text is reported by the extractor as an explicit error,
// never as a silent empty result.
type PDFExtraction struct {
	Text   string
	Images []ExtractedImage
	Pages  int
}

// PDFExtractor pulls text (and optionally images) out of a raw buffer.
type PDFExtractor interface {
	ExtractFromBuffer(ctx context.Context, data []byte, opts ExtractOptions) (*PDFExtraction, error)
}

// OCRProvider re-extracts text optically when plain extraction is poor.
type OCRProvider interface {
	Recognize(ctx context.Context, data []byte) (*PDFExtraction, error)
}

// Analyzer is the optional AI document-analysis collaborator. Any error
// or malformed result is treated as "unavailable" by the pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, text string, images []ExtractedImage) (*Analysis, error)
}

// TableExtractor pulls tables out of a raw buffer.
type TableExtractor interface {
	ExtractTables(ctx context.Context, data []byte) ([]TableData, error)
}

// Processor sequences classification, cleaning, structure extraction,
// chunking, enhancement and quality scoring for one document at a time.
// It holds no per-document state; one Processor may serve concurrent
// Process calls.
type Processor struct {
	pdf      PDFExtractor
	ocr      OCRProvider
	analyzer Analyzer
	tables   TableExtractor
}

// NewProcessor wires the pipeline with its external collaborators.
// ocr, analyzer and tables may be nil; the pipeline then uses local
// fallbacks for what they would have provided.
func NewProcessor(pdf PDFExtractor, ocr OCRProvider, analyzer Analyzer, tables TableExtractor) *Processor {
	return &Processor{pdf: pdf, ocr: ocr, analyzer: analyzer, tables: tables}
}

// ProcessBuffer runs the full pipeline over a raw file buffer.
func (p *Processor) ProcessBuffer(ctx context.Context, data []byte, opts ChunkOptions) (*ProcessedDocument, error) {
	if p.pdf == nil {
		return nil, fmt.Errorf("%w: no buffer extractor configured", ErrNoExtractableText)
	}

	enableOCR := true
	if opts.EnableOCR != nil {
		enableOCR = *opts.EnableOCR
	}
	extractImages := true
	if opts.ExtractImages != nil {
		extractImages = *opts.ExtractImages
	}

	extraction, err := p.pdf.ExtractFromBuffer(ctx, data, ExtractOptions{
		EnableOCR:     enableOCR,
		ExtractImages: extractImages,
	})
	method := "text"
	if err != nil {
		if !enableOCR || p.ocr == nil {
			return nil, fmt.Errorf("%w: %v", ErrNoExtractableText, err)
		}
		extraction, err = p.ocr.Recognize(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoExtractableText, err)
		}
		method = "ocr"
	}

	text := extraction.Text
	images := extraction.Images

	// OCR fallback when plain extraction looks corrupted or truncated.
	if method == "text" && enableOCR && p.ocr != nil {
		if q := ValidateTextQuality(text); q.Score < 70 || len(text) < 100 {
			if ocrRes, ocrErr := p.ocr.Recognize(ctx, data); ocrErr == nil {
				if len(ocrRes.Text)*10 > len(text)*8 {
					text = ocrRes.Text
					images = append(images, ocrRes.Images...)
					method = "ocr"
				}
			} else {
				log.Printf("textproc: OCR fallback failed, keeping extracted text: %v", ocrErr)
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrNoExtractableText
	}

	var tables []TableData
	if opts.TableHandling != TableIgnore && p.tables != nil {
		tables, err = p.tables.ExtractTables(ctx, data)
		if err != nil {
			log.Printf("textproc: table extraction failed, continuing without tables: %v", err)
			tables = nil
		}
	}

	return p.processCore(ctx, text, images, tables, method, opts)
}

// ProcessText runs the pipeline over already-extracted plain text.
func (p *Processor) ProcessText(ctx context.Context, text string, opts ChunkOptions) (*ProcessedDocument, error) {
	return p.processCore(ctx, text, nil, nil, "text", opts)
}

// processCore is the shared tail of both entry points: classify, clean,
// extract structure, chunk, enhance, score.
func (p *Processor) processCore(ctx context.Context, text string, images []ExtractedImage, tables []TableData, method string, opts ChunkOptions) (*ProcessedDocument, error) {
	analysis := p.analyzeDocument(ctx, text, images, opts)

	docType := opts.DocumentType
	if docType == "" {
		if analysis != nil {
			docType = analysis.DocumentType
		} else {
			docType = DetectDocumentType(text)
		}
	}
	cfg := TypeConfig(docType)

	cleaned := text
	if opts.CleanText == nil || *opts.CleanText {
		cleaned = CleanDocumentText(text, docType)
	}

	structure := ExtractStructure(cleaned, docType)

	size := opts.Size
	if size <= 0 {
		size = cfg.ChunkSize
	}
	overlap := opts.Overlap
	if overlap <= 0 {
		overlap = cfg.Overlap
	}
	preserve := cfg.PreserveStructure
	if opts.PreserveStructure != nil {
		preserve = *opts.PreserveStructure
	}
	noClean := false
	chunks := SmartChunk(cleaned, ChunkOptions{
		Size:              size,
		Overlap:           overlap,
		PreserveStructure: &preserve,
		CleanText:         &noClean, // already cleaned above
	})

	usable := 0
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) != "" {
			usable++
		}
	}
	if usable == 0 {
		return nil, ErrNoContent
	}

	enhanced := enhanceChunks(cleaned, chunks, structure, tables, docType, analysis)

	totalWords := len(strings.Fields(cleaned))
	pageCount := len(structure.Pages)
	if pageCount == 0 {
		pageCount = 1
	}

	language := ""
	confidence := 0
	if analysis != nil {
		language = analysis.Language
		confidence = analysis.ExtractionConfidence
	}
	if language == "" {
		language = DetectLanguage(cleaned)
	}
	if confidence == 0 {
		confidence = DocumentConfidence(cleaned, docType)
	}

	if len(images) > 0 {
		method = "mixed"
	}

	metadata := DocumentMetadata{
		Type:                docType,
		Pages:               pageCount,
		TotalWords:          totalWords,
		AverageWordsPerPage: totalWords / pageCount,
		Language:            language,
		Confidence:          confidence,
		HasImages:           len(images) > 0,
		HasTables:           len(tables) > 0,
		HasForms:            DetectForms(cleaned),
		ExtractionMethod:    method,
	}

	quality := CalculateDocumentQuality(cleaned, enhanced, metadata)

	return &ProcessedDocument{
		Text:     cleaned,
		Chunks:   enhanced,
		Metadata: metadata,
		Images:   images,
		Tables:   tables,
		Quality:  quality,
	}, nil
}

// analyzeDocument asks the AI collaborator for document analysis and
// falls back to the local computation on any failure or malformed
// response. The caller never sees the collaborator fail.
func (p *Processor) analyzeDocument(ctx context.Context, text string, images []ExtractedImage, opts ChunkOptions) *Analysis {
	if opts.DocumentType != "" {
		// Caller pinned the type; analysis would be ignored anyway.
		return nil
	}
	if p.analyzer == nil {
		return nil
	}
	analysis, err := p.analyzer.Analyze(ctx, text, images)
	if err != nil {
		log.Printf("textproc: AI analysis failed, falling back to pattern detection: %v", err)
		return FallbackAnalysis(text)
	}
	if analysis == nil || !knownType(analysis.DocumentType) {
		log.Printf("textproc: AI analysis returned unusable result, falling back to pattern detection")
		return FallbackAnalysis(text)
	}
	return analysis
}

func knownType(t DocumentType) bool {
	_, ok := typeConfigs[t]
	return ok
}

// enhanceChunks cross-references the chunk offsets with the extracted
// structure, attaching section, line-range and confidence metadata to
// each chunk in place of the chunker's bare output.
func enhanceChunks(text string, chunks []TextChunk, structure DocumentStructure, tables []TableData, docType DocumentType, analysis *Analysis) []TextChunk {
	enhanced := make([]TextChunk, len(chunks))
	for i, chunk := range chunks {
		startLine := strings.Count(text[:chunk.StartIndex], "\n") + 1
		endLine := strings.Count(text[:chunk.EndIndex], "\n") + 1

		meta := chunk.Metadata
		meta.DocumentType = docType
		meta.LineRange = &LineRange{Start: startLine, End: endLine}
		meta.Confidence = ChunkConfidence(chunk.Text, docType)
		if meta.Source == "" {
			meta.Source = "text"
		}

		for _, s := range structure.Sections {
			if line := s.Start + 1; line >= startLine && line <= endLine {
				meta.Section = s.Title
				meta.SectionLevel = s.Level
				break
			}
		}

		// Rough page estimate: ~50 lines per page, same heuristic the
		// table extractor uses for its page numbers.
		for t := range tables {
			if tables[t].Page >= startLine/50 && tables[t].Page <= endLine/50 {
				meta.TableData = &tables[t]
				break
			}
		}

		if analysis != nil {
			meta.AISummary = analysis.Summary
			meta.KeyTopics = analysis.KeyTopics
		}

		chunk.Metadata = meta
		enhanced[i] = chunk
	}
	return enhanced
}
