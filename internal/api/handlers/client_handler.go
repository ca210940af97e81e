package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	db "github.com/chatstack-io/chatstack/internal/core/database"
	"github.com/chatstack-io/chatstack/internal/models"
)

type ClientHandler struct {
	dbclient db.DbClient
}

func NewClientHandler(dbclient db.DbClient) *ClientHandler {
	return &ClientHandler{dbclient: dbclient}
}

type createClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateClient registers a tenant under the authenticated admin and
// issues its API key.
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	client := &models.Client{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		APIKey:    generateAPIKey(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.dbclient.CreateClient(r.Context(), client); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) GetClients(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	clients, err := h.dbclient.ListClientsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clients)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	clientID := chi.URLParam(r, "id")
	client, err := h.dbclient.GetClientByID(r.Context(), clientID)
	if err != nil || client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	if client.UserID != userID {
		http.Error(w, "not your client", http.StatusForbidden)
		return
	}

	if err := h.dbclient.DeleteClient(r.Context(), clientID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// generateAPIKey returns an opaque key for widget/API access.
func generateAPIKey() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "cs_" + uuid.NewString()
	}
	return "cs_" + hex.EncodeToString(b)
}
