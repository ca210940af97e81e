// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chatstack-io/chatstack/internal/config"
	db "github.com/chatstack-io/chatstack/internal/core/database"
	"github.com/chatstack-io/chatstack/internal/core/extract"
	"github.com/chatstack-io/chatstack/internal/core/ingest"
	"github.com/chatstack-io/chatstack/internal/core/llm"
	objectclient "github.com/chatstack-io/chatstack/internal/core/object-client"
	"github.com/chatstack-io/chatstack/internal/core/textproc"
)

type App struct {
	DBClient     db.DbClient
	ObjectClient objectclient.ObjectClient
	Ingestor     ingest.Ingestor
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	geminiEmbedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm, %w", err)
	}

	visionProvider, err := llm.NewGeminiVision(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize vision, %w", err)
	}

	analyzer := llm.NewGeminiAnalyzer(llmProvider)

	pdfReader := extract.NewPDFReader(visionProvider)
	ocrProvider := extract.NewPlaceholderOCR(pdfReader)
	tableExtractor := extract.NewStubTableExtractor()
	processor := textproc.NewProcessor(pdfReader, ocrProvider, analyzer, tableExtractor)

	useReadability := false
	converter := extract.NewDocconvExtractor(useReadability)

	ingCfg := &ingest.IngestConfig{
		BatchSize: 16,
		EmbedDim:  cfg.EmbedDim,
	}

	docIngestor := ingest.NewDocumentIngestor(dbClient, objClient, geminiEmbedder, processor, converter, ingCfg)

	server := NewServer(context.Background(), cfg, dbClient, objClient, docIngestor, geminiEmbedder, llmProvider)

	return &App{DBClient: dbClient, ObjectClient: objClient, Ingestor: docIngestor, Server: server}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
