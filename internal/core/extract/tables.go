package extract

import (
	"context"

	"github.com/chatstack-io/chatstack/internal/core/textproc"
)

// StubTableExtractor reports no tables. Structured table recovery from
// PDFs needs a layout engine this service does not carry yet.
type StubTableExtractor struct{}

func NewStubTableExtractor() *StubTableExtractor {
	return &StubTableExtractor{}
}

var _ textproc.TableExtractor = (*StubTableExtractor)(nil)

func (s *StubTableExtractor) ExtractTables(ctx context.Context, data []byte) ([]textproc.TableData, error) {
	return nil, nil
}
