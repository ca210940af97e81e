package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chatstack-io/chatstack/internal/core"
	db "github.com/chatstack-io/chatstack/internal/core/database"
	objectclient "github.com/chatstack-io/chatstack/internal/core/object-client"
	"github.com/chatstack-io/chatstack/internal/core/textproc"
)

// Ingestor is the background document-processing queue.
type Ingestor interface {
	Start(ctx context.Context, numWorkers int)
	Enqueue(docID string)
	ProcessOne(ctx context.Context, docID string) error
}

// DocProcessor is the processing pipeline the ingestor feeds documents
// through (textproc.Processor in production).
type DocProcessor interface {
	ProcessBuffer(ctx context.Context, data []byte, opts textproc.ChunkOptions) (*textproc.ProcessedDocument, error)
	ProcessText(ctx context.Context, text string, opts textproc.ChunkOptions) (*textproc.ProcessedDocument, error)
}

// TextConverter turns non-PDF buffers into plain text.
type TextConverter interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}

// IngestConfig tunes the ingestion pipeline.
//
// BatchSize: how many chunks to embed/write in one batch (e.g., 16).
// EmbedDim:  embedding dimension (0 = model default; match the pgvector column).
type IngestConfig struct {
	BatchSize int
	EmbedDim  int
}

// DocumentIngestor orchestrates background ingestion:
//
// db:        persistence for documents and chunks.
// obj:       object storage holding the uploaded files.
// embedder:  embedding provider.
// processor: the text-processing pipeline.
// converter: non-PDF to plain text conversion.
// jobs:      in-memory queue of document IDs (easy to swap with a broker later).
type DocumentIngestor struct {
	db        db.DbClient
	obj       objectclient.ObjectClient
	embedder  core.EmbeddingProvider
	processor DocProcessor
	converter TextConverter
	bucket    string
	cfg       *IngestConfig
	jobs      chan string
}

var _ Ingestor = (*DocumentIngestor)(nil)

// NewDocumentIngestor constructs the ingestor with a bounded job queue (64).
func NewDocumentIngestor(dbc db.DbClient, obj objectclient.ObjectClient, emb core.EmbeddingProvider, proc DocProcessor, conv TextConverter, cfg *IngestConfig) *DocumentIngestor {
	return &DocumentIngestor{
		db: dbc, obj: obj, embedder: emb, processor: proc, converter: conv, cfg: cfg,
		jobs: make(chan string, 64),
	}
}

// Start launches the worker goroutines reading from the jobs channel.
func (i *DocumentIngestor) Start(ctx context.Context, numWorkers int) {
	for w := 1; w <= numWorkers; w++ {
		go func(w int) {
			for {
				select {
				case <-ctx.Done():
					log.Println("DocumentIngestor: worker shutting down.")
					return
				case docID := <-i.jobs:
					log.Printf("DocumentIngestor: processing document %s on worker %d", docID, w)
					if err := i.ProcessOne(ctx, docID); err != nil {
						log.Printf("DocumentIngestor: document %s failed: %v", docID, err)
					}
				}
			}
		}(w)
	}
}

// Enqueue schedules a document ID for ingestion.
// If the queue is full, this call will block until space frees up.
func (i *DocumentIngestor) Enqueue(docID string) {
	i.jobs <- docID
}

// ProcessOne fetches, processes, embeds and persists a single document.
func (i *DocumentIngestor) ProcessOne(ctx context.Context, docID string) error {
	// Fresh context with a longer timeout; a slow upload must not be cut
	// short by the request that enqueued it.
	proctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc, err := i.db.GetDocumentByID(ctx, docID)
	if err != nil || doc == nil {
		return fmt.Errorf("document not found: %w", err)
	}

	_ = i.db.UpdateDocumentStatus(ctx, docID, "processing", "")

	bucket, key := ParseStorageURL(doc.StorageURL)
	data, err := i.obj.GetFile(proctx, bucket, key)
	if err != nil {
		_ = i.db.UpdateDocumentStatus(ctx, docID, "failed", "fetch failed")
		return fmt.Errorf("get object: %w", err)
	}

	processed, err := i.process(proctx, data, doc.ContentType)
	if err != nil {
		_ = i.db.UpdateDocumentStatus(ctx, docID, "failed", err.Error())
		return fmt.Errorf("process document: %w", err)
	}

	doc.DocumentType = string(processed.Metadata.Type)
	doc.Language = processed.Metadata.Language
	doc.QualityScore = processed.Quality.Overall
	doc.PageCount = processed.Metadata.Pages
	if err := i.db.UpdateDocumentProcessing(ctx, doc); err != nil {
		log.Printf("DocumentIngestor: could not record processing facts for %s: %v", docID, err)
	}

	// Re-ingestion replaces any chunks from a previous run.
	if err := i.db.DeleteChunksByDocument(proctx, docID); err != nil {
		_ = i.db.UpdateDocumentStatus(ctx, docID, "failed", "chunk cleanup failed")
		return fmt.Errorf("delete stale chunks: %w", err)
	}

	// Tie the embed/persist stages together with an errgroup.
	g, gctx := errgroup.WithContext(proctx)

	chunkCh := i.streamChunks(gctx, g, processed.Chunks)

	g.Go(func() error {
		return i.embedAndPersist(gctx, docID, chunkCh, i.cfg.BatchSize, i.cfg.EmbedDim)
	})

	if err := g.Wait(); err != nil {
		_ = i.db.UpdateDocumentStatus(ctx, docID, "failed", err.Error())
		return err
	}

	return i.db.UpdateDocumentStatus(ctx, docID, "ready", "")
}

// process routes the buffer to the right pipeline entry point by content
// type: PDFs go straight in, everything else is converted to plain text
// first.
func (i *DocumentIngestor) process(ctx context.Context, data []byte, contentType string) (*textproc.ProcessedDocument, error) {
	if strings.Contains(contentType, "pdf") {
		return i.processor.ProcessBuffer(ctx, data, textproc.ChunkOptions{})
	}
	if strings.HasPrefix(contentType, "text/plain") {
		return i.processor.ProcessText(ctx, string(data), textproc.ChunkOptions{})
	}

	text, err := i.converter.Extract(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", contentType, err)
	}
	return i.processor.ProcessText(ctx, text, textproc.ChunkOptions{})
}

// streamChunks feeds the processed chunks into the pipeline channel with
// backpressure from the embedding stage.
func (i *DocumentIngestor) streamChunks(ctx context.Context, g *errgroup.Group, chunks []textproc.TextChunk) <-chan textproc.TextChunk {
	out := make(chan textproc.TextChunk, 8)

	g.Go(func() error {
		defer close(out)
		for _, c := range chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return out
}

// ParseStorageURL extracts the bucket and key from a typical virtual-hosted-style S3 URL.
// Example: https://my-bucket.s3.us-east-2.amazonaws.com/path/to/file.pdf
func ParseStorageURL(u string) (bucket, key string) {
	hostPath := strings.SplitN(strings.TrimPrefix(u, "https://"), "/", 2)
	host := hostPath[0]
	if len(hostPath) == 2 {
		key = hostPath[1]
	}
	parts := strings.Split(host, ".")
	if len(parts) > 0 {
		bucket = parts[0]
	}
	return bucket, key
}
