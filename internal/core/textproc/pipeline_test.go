package textproc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPDF struct {
	res *PDFExtraction
	err error
}

func (s *stubPDF) ExtractFromBuffer(ctx context.Context, data []byte, opts ExtractOptions) (*PDFExtraction, error) {
	return s.res, s.err
}

type stubOCR struct {
	res    *PDFExtraction
	err    error
	called bool
}

func (s *stubOCR) Recognize(ctx context.Context, data []byte) (*PDFExtraction, error) {
	s.called = true
	return s.res, s.err
}

type stubAnalyzer struct {
	res    *Analysis
	err    error
	called bool
}

func (s *stubAnalyzer) Analyze(ctx context.Context, text string, images []ExtractedImage) (*Analysis, error) {
	s.called = true
	return s.res, s.err
}

type stubTables struct {
	tables []TableData
	err    error
}

func (s *stubTables) ExtractTables(ctx context.Context, data []byte) ([]TableData, error) {
	return s.tables, s.err
}

const medicalSample = "Patient presented with fever and chills. Prescribed 10 mg medication twice daily. " +
	"Diagnosis confirmed after clinical review by the physician. The patient was scheduled for a follow-up visit " +
	"and the treatment plan includes continued medication with monitoring of clinical response over two weeks."

func TestProcessTextEmptyInput(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil)
	_, err := p.ProcessText(context.Background(), "", ChunkOptions{})
	require.ErrorIs(t, err, ErrNoContent)

	_, err = p.ProcessText(context.Background(), "   \n\n  ", ChunkOptions{})
	require.ErrorIs(t, err, ErrNoContent)
}

func TestProcessTextAnalyzerFailureFallsBack(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("quota exceeded")}
	p := NewProcessor(nil, nil, analyzer, nil)

	doc, err := p.ProcessText(context.Background(), medicalSample, ChunkOptions{})
	require.NoError(t, err)
	require.True(t, analyzer.called)

	// The failure is invisible; classification falls back to patterns.
	require.Equal(t, DetectDocumentType(medicalSample), doc.Metadata.Type)
	require.Equal(t, TypeMedical, doc.Metadata.Type)
	require.Equal(t, 60, doc.Metadata.Confidence) // fallback analysis confidence
	require.NotEmpty(t, doc.Chunks)
}

func TestProcessTextAnalyzerResultUsed(t *testing.T) {
	analyzer := &stubAnalyzer{res: &Analysis{
		DocumentType:         TypeLegal,
		Summary:              "A services agreement.",
		KeyTopics:            []string{"agreement", "services"},
		Language:             "english",
		ExtractionConfidence: 88,
	}}
	p := NewProcessor(nil, nil, analyzer, nil)

	doc, err := p.ProcessText(context.Background(), medicalSample, ChunkOptions{})
	require.NoError(t, err)
	require.Equal(t, TypeLegal, doc.Metadata.Type)
	require.Equal(t, "english", doc.Metadata.Language)
	require.Equal(t, 88, doc.Metadata.Confidence)
	for _, c := range doc.Chunks {
		require.Equal(t, "A services agreement.", c.Metadata.AISummary)
		require.Equal(t, []string{"agreement", "services"}, c.Metadata.KeyTopics)
	}
}

func TestProcessTextAnalyzerUnknownTypeFallsBack(t *testing.T) {
	analyzer := &stubAnalyzer{res: &Analysis{DocumentType: DocumentType("made-up")}}
	p := NewProcessor(nil, nil, analyzer, nil)

	doc, err := p.ProcessText(context.Background(), medicalSample, ChunkOptions{})
	require.NoError(t, err)
	require.Equal(t, TypeMedical, doc.Metadata.Type)
}

func TestProcessTextTypeOverrideSkipsAnalyzer(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("should not be called")}
	p := NewProcessor(nil, nil, analyzer, nil)

	doc, err := p.ProcessText(context.Background(), medicalSample, ChunkOptions{DocumentType: TypeLegal})
	require.NoError(t, err)
	require.False(t, analyzer.called)
	require.Equal(t, TypeLegal, doc.Metadata.Type)
}

func TestProcessTextChunkMetadata(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil)
	doc, err := p.ProcessText(context.Background(), sampleProse(30), ChunkOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, doc.Chunks)

	for i, c := range doc.Chunks {
		require.NotNil(t, c.Metadata.LineRange, "chunk %d", i)
		require.GreaterOrEqual(t, c.Metadata.LineRange.Start, 1)
		require.GreaterOrEqual(t, c.Metadata.LineRange.End, c.Metadata.LineRange.Start)
		require.Positive(t, c.Metadata.Confidence)
		require.Equal(t, doc.Metadata.Type, c.Metadata.DocumentType)
		require.Equal(t, "text", c.Metadata.Source)
	}
	require.Positive(t, doc.Metadata.TotalWords)
	require.Positive(t, doc.Metadata.Pages)
	require.Equal(t, "text", doc.Metadata.ExtractionMethod)
}

func TestProcessTextSizeOverrides(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil)
	doc, err := p.ProcessText(context.Background(), sampleProse(30), ChunkOptions{Size: 400, Overlap: 50})
	require.NoError(t, err)
	for _, c := range doc.Chunks {
		// Boundary search may extend a chunk past the target by at most
		// half the window.
		require.LessOrEqual(t, len(c.Text), 400+200)
	}
}

func TestProcessBufferExtractionFails(t *testing.T) {
	p := NewProcessor(&stubPDF{err: errors.New("encrypted file")}, nil, nil, nil)
	_, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{})
	require.ErrorIs(t, err, ErrNoExtractableText)
}

func TestProcessBufferOCRRescue(t *testing.T) {
	ocr := &stubOCR{res: &PDFExtraction{Text: medicalSample, Pages: 1}}
	p := NewProcessor(&stubPDF{err: errors.New("no text layer")}, ocr, nil, nil)

	doc, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{})
	require.NoError(t, err)
	require.True(t, ocr.called)
	require.Equal(t, "ocr", doc.Metadata.ExtractionMethod)
}

func TestProcessBufferOCRDisabled(t *testing.T) {
	ocr := &stubOCR{res: &PDFExtraction{Text: medicalSample, Pages: 1}}
	p := NewProcessor(&stubPDF{err: errors.New("no text layer")}, ocr, nil, nil)

	_, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{EnableOCR: boolPtr(false)})
	require.ErrorIs(t, err, ErrNoExtractableText)
	require.False(t, ocr.called)
}

func TestProcessBufferWhitespaceOnly(t *testing.T) {
	p := NewProcessor(&stubPDF{res: &PDFExtraction{Text: "   \n  ", Pages: 1}}, nil, nil, nil)
	_, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{})
	require.ErrorIs(t, err, ErrNoExtractableText)
}

func TestProcessBufferTables(t *testing.T) {
	tables := &stubTables{tables: []TableData{{Page: 0, Rows: 2, Columns: 2, Headers: []string{"a", "b"}}}}
	p := NewProcessor(&stubPDF{res: &PDFExtraction{Text: sampleProse(30), Pages: 1}}, nil, nil, tables)

	doc, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{})
	require.NoError(t, err)
	require.True(t, doc.Metadata.HasTables)
	require.Len(t, doc.Tables, 1)
}

func TestProcessBufferTableExtractionFailureIsInvisible(t *testing.T) {
	tables := &stubTables{err: errors.New("parser crash")}
	p := NewProcessor(&stubPDF{res: &PDFExtraction{Text: sampleProse(30), Pages: 1}}, nil, nil, tables)

	doc, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{})
	require.NoError(t, err)
	require.False(t, doc.Metadata.HasTables)
}

func TestProcessBufferImagesMarkMixedMethod(t *testing.T) {
	extraction := &PDFExtraction{
		Text:   sampleProse(30),
		Images: []ExtractedImage{{Page: 1, Format: "png"}},
		Pages:  1,
	}
	p := NewProcessor(&stubPDF{res: extraction}, nil, nil, nil)

	doc, err := p.ProcessBuffer(context.Background(), []byte("%PDF"), ChunkOptions{})
	require.NoError(t, err)
	require.True(t, doc.Metadata.HasImages)
	require.Equal(t, "mixed", doc.Metadata.ExtractionMethod)
}
