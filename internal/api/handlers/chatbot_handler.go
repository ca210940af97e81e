package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	db "github.com/chatstack-io/chatstack/internal/core/database"
	"github.com/chatstack-io/chatstack/internal/models"
)

type ChatbotHandler struct {
	dbclient db.DbClient
}

func NewChatbotHandler(dbclient db.DbClient) *ChatbotHandler {
	return &ChatbotHandler{dbclient: dbclient}
}

type createChatbotRequest struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
	Color    string `json:"color"`
}

func (h *ChatbotHandler) CreateChatbot(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	var req createChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == "" || req.Name == "" {
		http.Error(w, "client_id and name required", http.StatusBadRequest)
		return
	}

	client, err := h.dbclient.GetClientByID(r.Context(), req.ClientID)
	if err != nil || client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	if client.UserID != userID {
		http.Error(w, "not your client", http.StatusForbidden)
		return
	}

	greeting := req.Greeting
	if greeting == "" {
		greeting = "Hi! How can I help you today?"
	}
	color := req.Color
	if color == "" {
		color = "#4F46E5"
	}

	bot := &models.Chatbot{
		ID:        uuid.NewString(),
		ClientID:  req.ClientID,
		Name:      req.Name,
		Greeting:  greeting,
		Color:     color,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.dbclient.CreateChatbot(r.Context(), bot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(bot)
}

func (h *ChatbotHandler) GetChatbots(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		http.Error(w, "client_id query parameter required", http.StatusBadRequest)
		return
	}

	client, err := h.dbclient.GetClientByID(r.Context(), clientID)
	if err != nil || client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	if client.UserID != userID {
		http.Error(w, "not your client", http.StatusForbidden)
		return
	}

	bots, err := h.dbclient.ListChatbotsByClient(r.Context(), clientID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bots)
}

func (h *ChatbotHandler) DeleteChatbot(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	botID := chi.URLParam(r, "id")
	if _, err := authorizeChatbot(r.Context(), h.dbclient, botID, userID); err != nil {
		writeAuthError(w, err)
		return
	}

	if err := h.dbclient.DeleteChatbot(r.Context(), botID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var (
	errNotFound  = errors.New("not found")
	errForbidden = errors.New("forbidden")
)

// authorizeChatbot walks the chatbot -> client -> user chain and returns
// the chatbot only when it belongs to the given admin.
func authorizeChatbot(ctx context.Context, dbclient db.DbClient, chatbotID, userID string) (*models.Chatbot, error) {
	bot, err := dbclient.GetChatbotByID(ctx, chatbotID)
	if err != nil || bot == nil {
		return nil, errNotFound
	}
	client, err := dbclient.GetClientByID(ctx, bot.ClientID)
	if err != nil || client == nil {
		return nil, errNotFound
	}
	if client.UserID != userID {
		return nil, errForbidden
	}
	return bot, nil
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errForbidden):
		http.Error(w, "not your chatbot", http.StatusForbidden)
	default:
		http.Error(w, "chatbot not found", http.StatusNotFound)
	}
}
