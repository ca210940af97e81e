package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chatstack-io/chatstack/internal/api/handlers"
	appMiddleware "github.com/chatstack-io/chatstack/internal/api/middlewares"
	"github.com/chatstack-io/chatstack/internal/config"
	"github.com/chatstack-io/chatstack/internal/core"
	db "github.com/chatstack-io/chatstack/internal/core/database"
	"github.com/chatstack-io/chatstack/internal/core/ingest"
	objectclient "github.com/chatstack-io/chatstack/internal/core/object-client"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(ctx context.Context, cfg *config.Config, dbc db.DbClient, obj objectclient.ObjectClient, ing ingest.Ingestor, emb core.EmbeddingProvider, llm core.LLMProvider) *Server {
	authHandler := handlers.NewAuthHandler(dbc)
	clientHandler := handlers.NewClientHandler(dbc)
	chatbotHandler := handlers.NewChatbotHandler(dbc)
	docHandler := handlers.NewDocumentHandler(dbc, obj, ing, cfg)
	chatHandler := handlers.NewChatHandler(dbc, emb, llm, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Serve the widget and dashboard assets
	fileServer := http.FileServer(http.Dir("./web"))
	r.Handle("/*", fileServer)

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware)

			protected.Post("/clients", clientHandler.CreateClient)
			protected.Get("/clients", clientHandler.GetClients)
			protected.Delete("/clients/{id}", clientHandler.DeleteClient)

			protected.Post("/chatbots", chatbotHandler.CreateChatbot)
			protected.Get("/chatbots", chatbotHandler.GetChatbots)
			protected.Delete("/chatbots/{id}", chatbotHandler.DeleteChatbot)

			protected.Post("/documents/upload", docHandler.UploadDocument)
			protected.Get("/documents", docHandler.GetDocuments)
			protected.Delete("/documents/{id}", docHandler.DeleteDocument)

			protected.Post("/chat/query", chatHandler.QueryChatbot)
			protected.Get("/chat/history", chatHandler.GetHistory)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
