package extract

import (
	"context"
	"fmt"

	"github.com/chatstack-io/chatstack/internal/core/textproc"
)

// PlaceholderOCR stands in for a real OCR engine: it re-runs the plain
// PDF text extraction with images disabled. Wiring a real engine means
// replacing only this type.
type PlaceholderOCR struct {
	pdf textproc.PDFExtractor
}

func NewPlaceholderOCR(pdf textproc.PDFExtractor) *PlaceholderOCR {
	return &PlaceholderOCR{pdf: pdf}
}

var _ textproc.OCRProvider = (*PlaceholderOCR)(nil)

func (o *PlaceholderOCR) Recognize(ctx context.Context, data []byte) (*textproc.PDFExtraction, error) {
	if o.pdf == nil {
		return nil, fmt.Errorf("no extractor available for OCR pass")
	}
	return o.pdf.ExtractFromBuffer(ctx, data, textproc.ExtractOptions{})
}
