package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chatstack-io/chatstack/internal/config"
	db "github.com/chatstack-io/chatstack/internal/core/database"
	"github.com/chatstack-io/chatstack/internal/core/ingest"
	objectclient "github.com/chatstack-io/chatstack/internal/core/object-client"
	"github.com/chatstack-io/chatstack/internal/models"
)

type DocumentHandler struct {
	dbclient     db.DbClient
	objectclient objectclient.ObjectClient
	ingestor     ingest.Ingestor
	cfg          *config.Config
}

func NewDocumentHandler(dbclient db.DbClient, objectclient objectclient.ObjectClient, ing ingest.Ingestor, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{dbclient: dbclient, objectclient: objectclient, ingestor: ing, cfg: cfg}
}

// UploadDocument handles file upload, DB insert, and background processing.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {

	r.ParseMultipartForm(52 << 20)

	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	chatbotID := r.FormValue("chatbot_id")
	if chatbotID == "" {
		http.Error(w, "chatbot_id required", http.StatusBadRequest)
		return
	}
	if _, err := authorizeChatbot(r.Context(), h.dbclient, chatbotID, userID); err != nil {
		writeAuthError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Sanitize filename to prevent path traversal or invalid characters
	cleanFilename := filepath.Base(header.Filename)
	docID := uuid.NewString()

	s3Key := fmt.Sprintf("%s/%s/%s", chatbotID, docID, cleanFilename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	url, err := h.objectclient.UploadFile(uploadctx, h.cfg.BucketName, s3Key, file, contentType)
	if err != nil {
		http.Error(w, fmt.Sprintf("upload failed: %v", err), 500)
		return
	}

	doc := &models.Document{
		ID:          docID,
		ChatbotID:   chatbotID,
		FileName:    header.Filename,
		StorageURL:  url,
		SourceType:  "upload",
		Status:      "uploaded",
		ContentType: contentType,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.dbclient.CreateDocument(uploadctx, doc); err != nil {
		log.Printf("DB insert failed for doc %s: %v", docID, err)
		http.Error(w, fmt.Sprintf("failed to store document metadata: %v", err), http.StatusInternalServerError)
		return
	}

	h.ingestor.Enqueue(doc.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	chatbotID := r.URL.Query().Get("chatbot_id")
	if chatbotID == "" {
		http.Error(w, "chatbot_id query parameter required", http.StatusBadRequest)
		return
	}
	if _, err := authorizeChatbot(r.Context(), h.dbclient, chatbotID, userID); err != nil {
		writeAuthError(w, err)
		return
	}

	documents, err := h.dbclient.ListDocumentsByChatbot(r.Context(), chatbotID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}

// DeleteDocument removes the stored file, its chunks and the document row.
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	docID := chi.URLParam(r, "id")
	doc, err := h.dbclient.GetDocumentByID(r.Context(), docID)
	if err != nil || doc == nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if _, err := authorizeChatbot(r.Context(), h.dbclient, doc.ChatbotID, userID); err != nil {
		writeAuthError(w, err)
		return
	}

	// Best effort: a dangling S3 object is cheaper than a dangling DB row.
	bucket, key := ingest.ParseStorageURL(doc.StorageURL)
	if err := h.objectclient.DeleteFile(r.Context(), bucket, key); err != nil {
		log.Printf("could not delete stored file for doc %s: %v", docID, err)
	}

	if err := h.dbclient.DeleteChunksByDocument(r.Context(), docID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.dbclient.DeleteDocument(r.Context(), docID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
