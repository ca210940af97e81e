package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chatstack-io/chatstack/internal/config"
	"github.com/chatstack-io/chatstack/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	dsn := cfg.DatabaseURL
	if cfg.SslCertPath != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", "verify-ca")
		q.Set("sslrootcert", cfg.SslCertPath)
		u.RawQuery = q.Encode()
		dsn = u.String()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Users

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, first_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()), COALESCE($6, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.FirstName, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Clients

func (c *DatabaseClient) CreateClient(ctx context.Context, client *models.Client) error {
	if client == nil {
		return errors.New("nil client")
	}
	const q = `
		INSERT INTO clients (id, user_id, name, email, api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), COALESCE($7, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		client.ID, client.UserID, client.Name, client.Email, client.APIKey, client.CreatedAt, client.UpdatedAt)
	return err
}

func (c *DatabaseClient) ListClientsByUser(ctx context.Context, userID string) ([]models.Client, error) {
	const q = `
		SELECT id, user_id, name, email, api_key, created_at, updated_at
		FROM clients
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		var cl models.Client
		if err := rows.Scan(
			&cl.ID, &cl.UserID, &cl.Name, &cl.Email, &cl.APIKey, &cl.CreatedAt, &cl.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	const q = `
		SELECT id, user_id, name, email, api_key, created_at, updated_at
		FROM clients WHERE id = $1
	`
	var cl models.Client
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&cl.ID, &cl.UserID, &cl.Name, &cl.Email, &cl.APIKey, &cl.CreatedAt, &cl.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (c *DatabaseClient) DeleteClient(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("client not found: %s", id)
	}
	return nil
}

// Chatbots

func (c *DatabaseClient) CreateChatbot(ctx context.Context, bot *models.Chatbot) error {
	if bot == nil {
		return errors.New("nil chatbot")
	}
	const q = `
		INSERT INTO chatbots (id, client_id, name, greeting, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), COALESCE($7, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		bot.ID, bot.ClientID, bot.Name, bot.Greeting, bot.Color, bot.CreatedAt, bot.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetChatbotByID(ctx context.Context, id string) (*models.Chatbot, error) {
	const q = `
		SELECT id, client_id, name, greeting, color, created_at, updated_at
		FROM chatbots WHERE id = $1
	`
	var b models.Chatbot
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ClientID, &b.Name, &b.Greeting, &b.Color, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *DatabaseClient) ListChatbotsByClient(ctx context.Context, clientID string) ([]models.Chatbot, error) {
	const q = `
		SELECT id, client_id, name, greeting, color, created_at, updated_at
		FROM chatbots
		WHERE client_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Chatbot
	for rows.Next() {
		var b models.Chatbot
		if err := rows.Scan(
			&b.ID, &b.ClientID, &b.Name, &b.Greeting, &b.Color, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) DeleteChatbot(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM chatbots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("chatbot not found: %s", id)
	}
	return nil
}

// Documents

func (c *DatabaseClient) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO documents
			(id, chatbot_id, file_name, storage_url, source_type, content_type, status, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()), COALESCE($9, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.ChatbotID, doc.FileName, doc.StorageURL, doc.SourceType, doc.ContentType, doc.Status, doc.CreatedAt, doc.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	const q = `
		SELECT id, chatbot_id, file_name, storage_url, source_type, content_type, status,
		       document_type, language, quality_score, page_count, error, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	var d models.Document
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.ChatbotID, &d.FileName, &d.StorageURL, &d.SourceType, &d.ContentType, &d.Status,
		&d.DocumentType, &d.Language, &d.QualityScore, &d.PageCount, &d.Error, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *DatabaseClient) ListDocumentsByChatbot(ctx context.Context, chatbotID string) ([]models.Document, error) {
	const q = `
		SELECT id, chatbot_id, file_name, storage_url, source_type, content_type, status,
		       document_type, language, quality_score, page_count, error, created_at, updated_at
		FROM documents
		WHERE chatbot_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, chatbotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(
			&d.ID, &d.ChatbotID, &d.FileName, &d.StorageURL, &d.SourceType, &d.ContentType, &d.Status,
			&d.DocumentType, &d.Language, &d.QualityScore, &d.PageCount, &d.Error, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateDocumentStatus(ctx context.Context, id string, status string, procErr string) error {
	const q = `
		UPDATE documents
		SET status = $2, error = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, status, procErr)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// UpdateDocumentProcessing persists the facts the pipeline derived about a
// document: its detected type, language, quality and page count.
func (c *DatabaseClient) UpdateDocumentProcessing(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		UPDATE documents
		SET document_type = $2, language = $3, quality_score = $4, page_count = $5, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.DocumentType, doc.Language, doc.QualityScore, doc.PageCount)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", doc.ID)
	}
	return nil
}

func (c *DatabaseClient) DeleteDocument(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// Document chunks

// InsertDocumentChunks inserts chunks in a single transaction.
func (c *DatabaseClient) InsertDocumentChunks(ctx context.Context, chunks []models.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO document_chunks
			(id, document_id, position, text, embedding, token_count, section, page, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()))
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range chunks {
		ch := &chunks[i]
		vec := pgvector.NewVector(ch.Embedding)

		if _, err := stmt.ExecContext(ctx,
			ch.ID, ch.DocumentID, ch.Position, ch.Text, vec, ch.TokenCount,
			ch.Section, ch.Page, ch.Confidence, ch.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (c *DatabaseClient) GetChunksByDocument(ctx context.Context, documentID string) ([]models.DocumentChunk, error) {
	const q = `
		SELECT id, document_id, position, text, embedding, token_count, section, page, confidence, created_at
		FROM document_chunks
		WHERE document_id = $1
		ORDER BY position ASC
	`
	rows, err := c.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DocumentChunk
	for rows.Next() {
		var (
			ch  models.DocumentChunk
			emb pgvector.Vector
		)
		if err := rows.Scan(
			&ch.ID, &ch.DocumentID, &ch.Position, &ch.Text, &emb, &ch.TokenCount,
			&ch.Section, &ch.Page, &ch.Confidence, &ch.CreatedAt,
		); err != nil {
			return nil, err
		}
		ch.Embedding = emb.Slice()
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_id = $1`, documentID)
	return err
}

// SearchChatbotChunks finds top-k similar chunks across a chatbot's ready
// documents for a query embedding, by cosine distance.
func (c *DatabaseClient) SearchChatbotChunks(ctx context.Context, chatbotID string, queryVec []float32, limit int) ([]models.DocumentChunk, error) {
	const q = `
		SELECT dc.id, dc.document_id, dc.position, dc.text, dc.embedding, dc.token_count,
		       dc.section, dc.page, dc.confidence
		FROM document_chunks dc
		JOIN documents d ON d.id = dc.document_id
		WHERE d.chatbot_id = $1 AND d.status = 'ready'
		ORDER BY dc.embedding <=> $2
		LIMIT $3
	`
	vec := pgvector.NewVector(queryVec)
	rows, err := c.db.QueryContext(ctx, q, chatbotID, vec, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DocumentChunk
	for rows.Next() {
		var (
			ch  models.DocumentChunk
			emb pgvector.Vector
		)
		if err := rows.Scan(&ch.ID, &ch.DocumentID, &ch.Position, &ch.Text, &emb, &ch.TokenCount,
			&ch.Section, &ch.Page, &ch.Confidence); err != nil {
			return nil, err
		}
		ch.Embedding = emb.Slice()
		out = append(out, ch)
	}
	return out, rows.Err()
}

// Conversations

func (c *DatabaseClient) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if conv == nil {
		return errors.New("nil conversation")
	}
	const q = `
		INSERT INTO conversations (id, chatbot_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		conv.ID, conv.ChatbotID, conv.Question, conv.Answer, conv.CreatedAt)
	return err
}

func (c *DatabaseClient) ListConversationsByChatbot(ctx context.Context, chatbotID string, limit int) ([]models.Conversation, error) {
	const q = `
		SELECT id, chatbot_id, question, answer, created_at
		FROM conversations
		WHERE chatbot_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := c.db.QueryContext(ctx, q, chatbotID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ID, &conv.ChatbotID, &conv.Question, &conv.Answer, &conv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, rows.Err()
}
