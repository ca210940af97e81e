package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chatstack-io/chatstack/internal/core/textproc"
	"github.com/chatstack-io/chatstack/internal/models"
)

// embedAndPersist consumes chunks, embeds them in batches, and writes to DB.
// This function is the downstream sink of the ingestion pipeline.
//
// docID:     current document ID.
// in:        chunk stream from streamChunks.
// batchSize: number of chunks to embed/write per batch (limits memory).
// embedDim:  model dimension (0 = default).
func (i *DocumentIngestor) embedAndPersist(
	ctx context.Context,
	docID string,
	in <-chan textproc.TextChunk,
	batchSize int,
	embedDim int,
) error {
	batch := make([]textproc.TextChunk, 0, batchSize)
	pos := 0

	// flush embeds the current batch and inserts it into the database.
	flush := func(items []textproc.TextChunk) error {
		if len(items) == 0 {
			return nil
		}

		texts := make([]string, len(items))
		for idx := range items {
			texts[idx] = items[idx].Text
		}

		vecs, err := i.embedder.EmbedTexts(ctx, texts, embedDim)
		if err != nil {
			return fmt.Errorf("embed: %w", err)
		}
		if len(vecs) != len(items) {
			return fmt.Errorf("embed size mismatch: got %d want %d", len(vecs), len(items))
		}

		rows := make([]models.DocumentChunk, len(items))
		for k := range items {
			c := &items[k]
			page := 0
			if c.Metadata.LineRange != nil {
				// Same rough lines-per-page estimate the pipeline uses.
				page = c.Metadata.LineRange.Start/50 + 1
			}
			rows[k] = models.DocumentChunk{
				ID:         uuid.NewString(),
				DocumentID: docID,
				Text:       c.Text,
				Embedding:  vecs[k],
				Position:   pos,
				TokenCount: approxTokens(c.Text),
				Section:    c.Metadata.Section,
				Page:       page,
				Confidence: c.Metadata.Confidence,
			}
			pos++
		}
		if err := i.db.InsertDocumentChunks(ctx, rows); err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
		return nil
	}

	// Read the stream and flush in batches.
	for c := range in {
		batch = append(batch, c)
		if len(batch) == batchSize {
			if err := flush(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	// Final tail.
	return flush(batch)
}

// approxTokens is a cheap token estimator (~4 chars ≈ 1 token).
// Replace with a real tokenizer later to improve retrieval budgeting.
func approxTokens(s string) int {
	n := len([]rune(s))
	if n <= 0 {
		return 0
	}
	return (n + 3) / 4
}
