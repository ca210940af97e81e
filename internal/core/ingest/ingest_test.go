package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chatstack-io/chatstack/internal/core/textproc"
	"github.com/chatstack-io/chatstack/internal/models"
)

type stubDB struct {
	doc       *models.Document
	statuses  []string
	lastErr   string
	processed *models.Document
	inserts   [][]models.DocumentChunk
	deleted   []string
	insertErr error
}

func (s *stubDB) CreateUser(ctx context.Context, u *models.User) error { return nil }
func (s *stubDB) GetUserByEmail(ctx context.Context, e string) (*models.User, error) {
	return nil, nil
}
func (s *stubDB) CreateClient(ctx context.Context, c *models.Client) error { return nil }
func (s *stubDB) ListClientsByUser(ctx context.Context, u string) ([]models.Client, error) {
	return nil, nil
}
func (s *stubDB) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	return nil, nil
}
func (s *stubDB) DeleteClient(ctx context.Context, id string) error          { return nil }
func (s *stubDB) CreateChatbot(ctx context.Context, b *models.Chatbot) error { return nil }
func (s *stubDB) GetChatbotByID(ctx context.Context, id string) (*models.Chatbot, error) {
	return nil, nil
}
func (s *stubDB) ListChatbotsByClient(ctx context.Context, c string) ([]models.Chatbot, error) {
	return nil, nil
}
func (s *stubDB) DeleteChatbot(ctx context.Context, id string) error           { return nil }
func (s *stubDB) CreateDocument(ctx context.Context, d *models.Document) error { return nil }

func (s *stubDB) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	return s.doc, nil
}

func (s *stubDB) ListDocumentsByChatbot(ctx context.Context, c string) ([]models.Document, error) {
	return nil, nil
}

func (s *stubDB) UpdateDocumentStatus(ctx context.Context, id, status, procErr string) error {
	s.statuses = append(s.statuses, status)
	s.lastErr = procErr
	return nil
}

func (s *stubDB) UpdateDocumentProcessing(ctx context.Context, doc *models.Document) error {
	cp := *doc
	s.processed = &cp
	return nil
}

func (s *stubDB) DeleteDocument(ctx context.Context, id string) error { return nil }

func (s *stubDB) InsertDocumentChunks(ctx context.Context, chunks []models.DocumentChunk) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	cp := make([]models.DocumentChunk, len(chunks))
	copy(cp, chunks)
	s.inserts = append(s.inserts, cp)
	return nil
}

func (s *stubDB) GetChunksByDocument(ctx context.Context, d string) ([]models.DocumentChunk, error) {
	return nil, nil
}

func (s *stubDB) DeleteChunksByDocument(ctx context.Context, d string) error {
	s.deleted = append(s.deleted, d)
	return nil
}

func (s *stubDB) SearchChatbotChunks(ctx context.Context, c string, v []float32, l int) ([]models.DocumentChunk, error) {
	return nil, nil
}
func (s *stubDB) CreateConversation(ctx context.Context, c *models.Conversation) error { return nil }
func (s *stubDB) ListConversationsByChatbot(ctx context.Context, c string, l int) ([]models.Conversation, error) {
	return nil, nil
}
func (s *stubDB) Close() error { return nil }

type stubObj struct {
	data []byte
	err  error

	gotBucket string
	gotKey    string
}

func (s *stubObj) UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (string, error) {
	return "", nil
}

func (s *stubObj) DeleteFile(ctx context.Context, bucket, key string) error { return nil }

func (s *stubObj) GetFile(ctx context.Context, bucket, key string) ([]byte, error) {
	s.gotBucket, s.gotKey = bucket, key
	return s.data, s.err
}

func (s *stubObj) GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), s.err
}

type stubEmbedder struct {
	err   error
	calls [][]string
}

func (s *stubEmbedder) EmbedTexts(ctx context.Context, texts []string, dim int) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := make([]string, len(texts))
	copy(cp, texts)
	s.calls = append(s.calls, cp)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

type stubProc struct {
	result     *textproc.ProcessedDocument
	err        error
	bufferUsed bool
	textUsed   bool
	gotText    string
}

func (s *stubProc) ProcessBuffer(ctx context.Context, data []byte, opts textproc.ChunkOptions) (*textproc.ProcessedDocument, error) {
	s.bufferUsed = true
	return s.result, s.err
}

func (s *stubProc) ProcessText(ctx context.Context, text string, opts textproc.ChunkOptions) (*textproc.ProcessedDocument, error) {
	s.textUsed = true
	s.gotText = text
	return s.result, s.err
}

type stubConv struct {
	out    string
	err    error
	called bool
}

func (s *stubConv) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	s.called = true
	return s.out, s.err
}

func processedDoc(nChunks int) *textproc.ProcessedDocument {
	chunks := make([]textproc.TextChunk, nChunks)
	for i := range chunks {
		chunks[i] = textproc.TextChunk{
			Text: fmt.Sprintf("chunk %d text body", i),
			Metadata: textproc.ChunkMetadata{
				Section:    "Intro",
				Confidence: 80,
				LineRange:  &textproc.LineRange{Start: i*10 + 1, End: i*10 + 9},
			},
		}
	}
	return &textproc.ProcessedDocument{
		Chunks: chunks,
		Metadata: textproc.DocumentMetadata{
			Type:     textproc.TypeTechnical,
			Language: "en",
			Pages:    3,
		},
		Quality: textproc.QualityScore{Overall: 82},
	}
}

func testDoc(contentType string) *models.Document {
	return &models.Document{
		ID:          "doc-1",
		ChatbotID:   "bot-1",
		StorageURL:  "https://my-bucket.s3.us-east-2.amazonaws.com/bot-1/doc-1/file.txt",
		ContentType: contentType,
		Status:      "uploaded",
	}
}

func newTestIngestor(dbc *stubDB, obj *stubObj, emb *stubEmbedder, proc *stubProc, conv *stubConv, batch int) *DocumentIngestor {
	return NewDocumentIngestor(dbc, obj, emb, proc, conv, &IngestConfig{BatchSize: batch, EmbedDim: 2})
}

func TestProcessOneHappyPath(t *testing.T) {
	dbc := &stubDB{doc: testDoc("text/plain")}
	obj := &stubObj{data: []byte("raw document text")}
	emb := &stubEmbedder{}
	proc := &stubProc{result: processedDoc(5)}
	conv := &stubConv{}

	ing := newTestIngestor(dbc, obj, emb, proc, conv, 2)
	err := ing.ProcessOne(context.Background(), "doc-1")
	require.NoError(t, err)

	require.Equal(t, []string{"processing", "ready"}, dbc.statuses)
	require.True(t, proc.textUsed)
	require.False(t, proc.bufferUsed)
	require.False(t, conv.called)
	require.Equal(t, "raw document text", proc.gotText)

	// Stale chunks cleared before re-insert.
	require.Equal(t, []string{"doc-1"}, dbc.deleted)

	// 5 chunks with batch size 2 -> 2 + 2 + 1.
	require.Len(t, dbc.inserts, 3)
	require.Len(t, dbc.inserts[0], 2)
	require.Len(t, dbc.inserts[2], 1)

	// Positions are assigned across batches.
	var all []models.DocumentChunk
	for _, b := range dbc.inserts {
		all = append(all, b...)
	}
	for i, c := range all {
		require.Equal(t, i, c.Position)
		require.Equal(t, "doc-1", c.DocumentID)
		require.NotEmpty(t, c.ID)
		require.Len(t, c.Embedding, 2)
		require.Equal(t, "Intro", c.Section)
		require.Positive(t, c.TokenCount)
	}

	// Processing facts recorded on the document.
	require.NotNil(t, dbc.processed)
	require.Equal(t, "technical", dbc.processed.DocumentType)
	require.Equal(t, "en", dbc.processed.Language)
	require.Equal(t, 82, dbc.processed.QualityScore)
	require.Equal(t, 3, dbc.processed.PageCount)

	// Storage URL parsed into bucket and key.
	require.Equal(t, "my-bucket", obj.gotBucket)
	require.Equal(t, "bot-1/doc-1/file.txt", obj.gotKey)
}

func TestProcessOneFetchFailure(t *testing.T) {
	dbc := &stubDB{doc: testDoc("text/plain")}
	obj := &stubObj{err: errors.New("boom")}

	ing := newTestIngestor(dbc, obj, &stubEmbedder{}, &stubProc{}, &stubConv{}, 2)
	err := ing.ProcessOne(context.Background(), "doc-1")
	require.Error(t, err)

	require.Equal(t, []string{"processing", "failed"}, dbc.statuses)
	require.Equal(t, "fetch failed", dbc.lastErr)
}

func TestProcessOnePipelineFailure(t *testing.T) {
	dbc := &stubDB{doc: testDoc("text/plain")}
	obj := &stubObj{data: []byte("x")}
	proc := &stubProc{err: textproc.ErrNoContent}

	ing := newTestIngestor(dbc, obj, &stubEmbedder{}, proc, &stubConv{}, 2)
	err := ing.ProcessOne(context.Background(), "doc-1")
	require.Error(t, err)

	require.Equal(t, []string{"processing", "failed"}, dbc.statuses)
	require.Contains(t, dbc.lastErr, "no extractable content")
}

func TestProcessOneEmbedFailure(t *testing.T) {
	dbc := &stubDB{doc: testDoc("text/plain")}
	obj := &stubObj{data: []byte("raw")}
	emb := &stubEmbedder{err: errors.New("quota exceeded")}

	ing := newTestIngestor(dbc, obj, emb, &stubProc{result: processedDoc(1)}, &stubConv{}, 2)
	err := ing.ProcessOne(context.Background(), "doc-1")
	require.Error(t, err)

	require.Equal(t, []string{"processing", "failed"}, dbc.statuses)
	require.Contains(t, dbc.lastErr, "embed")
	require.Empty(t, dbc.inserts)
}

func TestProcessRoutesPDFToBuffer(t *testing.T) {
	dbc := &stubDB{doc: testDoc("application/pdf")}
	obj := &stubObj{data: []byte("%PDF-1.4")}
	proc := &stubProc{result: processedDoc(1)}
	conv := &stubConv{}

	ing := newTestIngestor(dbc, obj, &stubEmbedder{}, proc, conv, 4)
	require.NoError(t, ing.ProcessOne(context.Background(), "doc-1"))

	require.True(t, proc.bufferUsed)
	require.False(t, proc.textUsed)
	require.False(t, conv.called)
}

func TestProcessRoutesOfficeFormatsThroughConverter(t *testing.T) {
	ct := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	dbc := &stubDB{doc: testDoc(ct)}
	obj := &stubObj{data: []byte("docx bytes")}
	proc := &stubProc{result: processedDoc(1)}
	conv := &stubConv{out: "converted text"}

	ing := newTestIngestor(dbc, obj, &stubEmbedder{}, proc, conv, 4)
	require.NoError(t, ing.ProcessOne(context.Background(), "doc-1"))

	require.True(t, conv.called)
	require.True(t, proc.textUsed)
	require.Equal(t, "converted text", proc.gotText)
}

func TestProcessConverterFailure(t *testing.T) {
	dbc := &stubDB{doc: testDoc("application/msword")}
	obj := &stubObj{data: []byte("doc bytes")}
	conv := &stubConv{err: errors.New("unsupported")}

	ing := newTestIngestor(dbc, obj, &stubEmbedder{}, &stubProc{}, conv, 4)
	err := ing.ProcessOne(context.Background(), "doc-1")
	require.Error(t, err)
	require.Equal(t, []string{"processing", "failed"}, dbc.statuses)
}

func TestParseStorageURL(t *testing.T) {
	b, k := ParseStorageURL("https://my-bucket.s3.us-east-2.amazonaws.com/path/to/file.pdf")
	require.Equal(t, "my-bucket", b)
	require.Equal(t, "path/to/file.pdf", k)

	b, k = ParseStorageURL("https://bucket.s3.amazonaws.com/")
	require.Equal(t, "bucket", b)
	require.Equal(t, "", k)
}

func TestApproxTokens(t *testing.T) {
	require.Equal(t, 0, approxTokens(""))
	require.Equal(t, 1, approxTokens("abcd"))
	require.Equal(t, 2, approxTokens("abcde"))
	require.Equal(t, len(strings.Repeat("x", 400))/4, approxTokens(strings.Repeat("x", 400)))
}
