package api

import (
	"net/http"

	"github.com/anujv/portfolio/internal/assets"
	"github.com/anujv/portfolio/internal/config"
	"github.com/anujv/portfolio/internal/db"
	"github.com/anujv/portfolio/internal/repository/sqlite"
	"github.com/anujv/portfolio/internal/token"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB, assetStore *assets.Store) http.Handler {
	r := mux.NewRouter()

	// Middleware chain. CORS wraps the router itself (see the return) so
	// that OPTIONS preflights are answered even for paths with no OPTIONS
	// route; mux runs Use middleware only after a route matches.
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and token service
	repo := sqlite.New(db, logger)
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenDuration)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, tokens)
	projectsHandler := NewProjectsHandler(repo, assetStore)
	skillsHandler := NewSkillsHandler(repo)
	contactsHandler := NewContactsHandler(repo)

	// System endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/api/health", systemHandler.HealthHandler).Methods("GET")

	// Public auth endpoints. Register is one-time bootstrap: it refuses
	// once an admin exists, but operators should still disable or protect
	// it after setup.
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Public content reads
	r.HandleFunc("/api/projects", projectsHandler.List).Methods("GET")
	r.HandleFunc("/api/projects/{id}", projectsHandler.Get).Methods("GET")
	r.HandleFunc("/api/skills", skillsHandler.List).Methods("GET")
	r.HandleFunc("/api/skills/category/{category}", skillsHandler.ListByCategory).Methods("GET")
	r.HandleFunc("/api/skills/{id}", skillsHandler.Get).Methods("GET")

	// Public contact form submission
	r.HandleFunc("/api/contact", contactsHandler.Submit).Methods("POST")

	// Uploaded project images
	r.PathPrefix(assets.URLPrefix).Handler(
		http.StripPrefix(assets.URLPrefix, http.FileServer(http.Dir(assetStore.Dir()))))

	// Admin-only routes behind the access guard
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(AuthMiddleware(tokens, repo))

	admin.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	admin.HandleFunc("/projects", projectsHandler.Create).Methods("POST")
	admin.HandleFunc("/projects/{id}", projectsHandler.Update).Methods("PUT")
	admin.HandleFunc("/projects/{id}", projectsHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/skills", skillsHandler.Create).Methods("POST")
	admin.HandleFunc("/skills/{id}", skillsHandler.Update).Methods("PUT")
	admin.HandleFunc("/skills/{id}", skillsHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/contact", contactsHandler.List).Methods("GET")
	admin.HandleFunc("/contact/{id}", contactsHandler.Get).Methods("GET")
	admin.HandleFunc("/contact/{id}/read", contactsHandler.MarkRead).Methods("PUT")
	admin.HandleFunc("/contact/{id}", contactsHandler.Delete).Methods("DELETE")

	return CORSMiddleware(cfg.AllowedOrigins)(r)
}
