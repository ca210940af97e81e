package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chatstack-io/chatstack/internal/config"
	"github.com/chatstack-io/chatstack/internal/core"
	db "github.com/chatstack-io/chatstack/internal/core/database"
	"github.com/chatstack-io/chatstack/internal/models"
)

type ChatHandler struct {
	dbclient db.DbClient
	embedder core.EmbeddingProvider
	llm      core.LLMProvider
	cfg      *config.Config
}

func NewChatHandler(dbclient db.DbClient, emb core.EmbeddingProvider, llm core.LLMProvider, cfg *config.Config) *ChatHandler {
	return &ChatHandler{dbclient: dbclient, embedder: emb, llm: llm, cfg: cfg}
}

type ChatRequest struct {
	ChatbotID string `json:"chatbot_id"`
	Query     string `json:"query"`
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// QueryChatbot answers a visitor question from the chatbot's document base.
func (h *ChatHandler) QueryChatbot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatbotID == "" || strings.TrimSpace(req.Query) == "" {
		http.Error(w, "chatbot_id and query required", http.StatusBadRequest)
		return
	}

	bot, err := authorizeChatbot(ctx, h.dbclient, req.ChatbotID, userID)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	// Embed the query
	vecs, err := h.embedder.EmbedTexts(ctx, []string{req.Query}, h.cfg.EmbedDim)
	if err != nil || len(vecs) == 0 {
		http.Error(w, fmt.Sprintf("embedding failed: %v", err), 500)
		return
	}
	queryVec := vecs[0]

	// Retrieve top chunks across all ready documents of this chatbot
	chunks, err := h.dbclient.SearchChatbotChunks(ctx, bot.ID, queryVec, 5)
	if err != nil {
		http.Error(w, fmt.Sprintf("search failed: %v", err), 500)
		return
	}

	var sb strings.Builder
	sources := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		sb.WriteString(ch.Text)
		sb.WriteString("\n---\n")
		if ch.Section != "" {
			sources = append(sources, ch.Section)
		}
	}

	systemPrompt := "You are an intelligent assistant answering based only on the given document content. If unsure, say 'I cannot find this in the document.'"
	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", sb.String(), req.Query)

	answer, err := h.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		http.Error(w, fmt.Sprintf("LLM failed: %v", err), 500)
		return
	}

	conv := &models.Conversation{
		ID:        uuid.NewString(),
		ChatbotID: bot.ID,
		Question:  req.Query,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	if err := h.dbclient.CreateConversation(ctx, conv); err != nil {
		// Answer still goes out; history is best effort.
		log.Printf("could not record conversation for chatbot %s: %v", bot.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{Answer: answer, Sources: sources})
}

// GetHistory returns past question/answer pairs for a chatbot.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	chatbotID := r.URL.Query().Get("chatbot_id")
	if chatbotID == "" {
		http.Error(w, "chatbot_id query parameter required", http.StatusBadRequest)
		return
	}
	if _, err := authorizeChatbot(ctx, h.dbclient, chatbotID, userID); err != nil {
		writeAuthError(w, err)
		return
	}

	convs, err := h.dbclient.ListConversationsByChatbot(ctx, chatbotID, 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(convs)
}
