package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/todmy/legal-debate/internal/auth"
	"github.com/todmy/legal-debate/internal/dataset"
	"github.com/todmy/legal-debate/internal/embeddings"
	"github.com/todmy/legal-debate/internal/llm"
	"github.com/todmy/legal-debate/internal/storage"
)

// ServerConfig holds everything the server needs to wire its services
type ServerConfig struct {
	DB               *sql.DB
	JWTSecret        string
	OpenRouterAPIKey string
	Model            string
	JudgeModel       string
	EmbeddingModel   string
}

type Server struct {
	router *chi.Mux

	authService  auth.Service
	questionRepo storage.QuestionRepository
	runRepo      storage.DebateRunRepository
	argumentRepo storage.ArgumentRepository
	loader       *dataset.Loader
	llmClient    *llm.Client
	graderClient *llm.Client
	embedder     *embeddings.CachedClient
}

func NewServer(cfg ServerConfig) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var llmOpts []llm.ClientOption
	if cfg.Model != "" {
		llmOpts = append(llmOpts, llm.WithModel(cfg.Model))
	}
	var graderOpts []llm.ClientOption
	if cfg.JudgeModel != "" {
		graderOpts = append(graderOpts, llm.WithModel(cfg.JudgeModel))
	}
	var embedOpts []embeddings.ClientOption
	if cfg.EmbeddingModel != "" {
		embedOpts = append(embedOpts, embeddings.WithModel(cfg.EmbeddingModel))
	}

	s := &Server{
		router:       r,
		authService:  auth.NewJWTService(auth.Config{SecretKey: cfg.JWTSecret}, auth.NewPostgresRepository(cfg.DB)),
		questionRepo: storage.NewPostgresQuestionRepository(cfg.DB),
		runRepo:      storage.NewPostgresDebateRunRepository(cfg.DB),
		argumentRepo: storage.NewPostgresArgumentRepository(cfg.DB),
		loader:       dataset.NewLoader(),
		llmClient:    llm.NewClient(cfg.OpenRouterAPIKey, llmOpts...),
		graderClient: llm.NewClient(cfg.OpenRouterAPIKey, graderOpts...),
		embedder: embeddings.NewCachedClient(
			embeddings.NewClient(cfg.OpenRouterAPIKey, embedOpts...),
			embeddings.NewMemoryCache(),
		),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API v1
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.authService))

			// Questions
			r.Route("/questions", func(r chi.Router) {
				r.Post("/import", s.handleImportQuestions)
				r.Get("/", s.handleListQuestions)
				r.Get("/{questionID}/evaluation", s.handleEvaluateQuestion)
			})

			// Debates
			r.Route("/debates", func(r chi.Router) {
				r.Post("/", s.handleCreateDebate)
				r.Get("/", s.handleListDebates)
				r.Get("/{debateID}", s.handleGetDebate)
				r.Get("/{debateID}/evaluation", s.handleEvaluateDebate)
			})

			// Argument similarity search
			r.Post("/arguments/similar", s.handleSimilarArguments)
		})
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// Helper to send JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
