package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/papergen/backend/internal/auth"
	"github.com/papergen/backend/internal/database"
	"github.com/papergen/backend/internal/generator"
	"github.com/papergen/backend/internal/papers"
	"github.com/papergen/backend/internal/planner"
	"github.com/papergen/backend/internal/prompts"
	"github.com/papergen/backend/internal/syllabus"
	"github.com/rs/cors"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize generation pipeline
	llm := generator.NewClient()
	executor := generator.NewExecutor(llm, prompts.NewRouter())
	store := papers.NewStore(db)
	gate := papers.NewStoreGate(store)
	service := papers.NewService(planner.New(), executor, store, gate)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	paperHandler := papers.NewHandler(service, store)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/syllabus/topics", syllabus.TopicsHandler).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/papers/generate", paperHandler.GeneratePaper).Methods("POST")
	protected.HandleFunc("/papers/{id}", paperHandler.GetPaper).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
