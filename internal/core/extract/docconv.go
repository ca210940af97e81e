package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// DocconvExtractor pulls plain text out of non-PDF office and web
// formats (docx, html, odt, ...) using sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// Extract converts the buffer to plain text based on its content type.
func (e *DocconvExtractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", contentType, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Body) == "" {
		return "", fmt.Errorf("docconv %s: empty text", contentType)
	}
	return res.Body, nil
}
