package models

import (
	"time"
)

// User is an admin account that manages clients and their chatbots.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Client is one tenant: a customer whose sites embed our chatbots.
// APIKey authenticates widget traffic for this tenant.
type Client struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	APIKey    string    `db:"api_key" json:"api_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Chatbot belongs to a client and owns a document corpus.
type Chatbot struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"client_id"`
	Name      string    `db:"name" json:"name"`
	Greeting  string    `db:"greeting" json:"greeting"`
	Color     string    `db:"color" json:"color"` // widget accent color, hex
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Document is one uploaded file attached to a chatbot.
type Document struct {
	ID           string    `db:"id" json:"id"`
	ChatbotID    string    `db:"chatbot_id" json:"chatbot_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	StorageURL   string    `db:"storage_url" json:"storage_url"`
	SourceType   string    `db:"source_type" json:"source_type"` // "upload" or "url"
	ContentType  string    `db:"content_type" json:"content_type"`
	Status       string    `db:"status" json:"status"` // uploaded | processing | ready | failed
	DocumentType string    `db:"document_type" json:"document_type"`
	Language     string    `db:"language" json:"language"`
	QualityScore int       `db:"quality_score" json:"quality_score"`
	PageCount    int       `db:"page_count" json:"page_count"`
	Error        string    `db:"error" json:"error,omitempty"` // last processing failure, if any
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentChunk is one embedded text chunk from a processed document.
type DocumentChunk struct {
	ID         string    `db:"id" json:"id"`
	DocumentID string    `db:"document_id" json:"document_id"`
	Text       string    `db:"text" json:"text"`
	Embedding  []float32 `db:"embedding" json:"embedding"` // pgvector column
	Position   int       `db:"position" json:"position"`
	TokenCount int       `db:"token_count" json:"token_count"`
	Section    string    `db:"section" json:"section,omitempty"`
	Page       int       `db:"page" json:"page,omitempty"`
	Confidence int       `db:"confidence" json:"confidence"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Conversation is one question/answer exchange against a chatbot.
type Conversation struct {
	ID        string    `db:"id" json:"id"`
	ChatbotID string    `db:"chatbot_id" json:"chatbot_id"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
