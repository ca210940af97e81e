package db

import (
	"context"

	"github.com/chatstack-io/chatstack/internal/models"
)

// DbClient defines all persistence operations your services will need.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByEmail(ctx context.Context, email string) (user *models.User, err error)

	CreateClient(ctx context.Context, client *models.Client) error
	ListClientsByUser(ctx context.Context, userID string) ([]models.Client, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error

	CreateChatbot(ctx context.Context, bot *models.Chatbot) error
	GetChatbotByID(ctx context.Context, id string) (*models.Chatbot, error)
	ListChatbotsByClient(ctx context.Context, clientID string) ([]models.Chatbot, error)
	DeleteChatbot(ctx context.Context, id string) error

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByChatbot(ctx context.Context, chatbotID string) ([]models.Document, error)
	UpdateDocumentStatus(ctx context.Context, id string, status string, procErr string) error
	UpdateDocumentProcessing(ctx context.Context, doc *models.Document) error
	DeleteDocument(ctx context.Context, id string) error

	InsertDocumentChunks(ctx context.Context, chunks []models.DocumentChunk) error
	GetChunksByDocument(ctx context.Context, documentID string) ([]models.DocumentChunk, error)
	DeleteChunksByDocument(ctx context.Context, documentID string) error

	// SearchChatbotChunks finds the top-k chunks across all of a chatbot's
	// ready documents, ordered by embedding distance to the query vector.
	SearchChatbotChunks(ctx context.Context, chatbotID string, queryVec []float32, limit int) ([]models.DocumentChunk, error)

	CreateConversation(ctx context.Context, conv *models.Conversation) error
	ListConversationsByChatbot(ctx context.Context, chatbotID string, limit int) ([]models.Conversation, error)

	Close() error
}
