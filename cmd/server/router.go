package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/galenhq/galen-api/internal/api"
	apimiddleware "github.com/galenhq/galen-api/internal/api/middleware"
)

// setupRouter builds the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	accessLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, accessLifetime)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	diagnosisHandler := api.NewDiagnosisHandler(app.diagnosisService)
	recommendationHandler := api.NewRecommendationHandler(app.recommendationService)
	chatHandler := api.NewChatHandler(app.chatService)

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/diagnoses", diagnosisHandler.Create)
			r.Get("/diagnoses", diagnosisHandler.List)
			r.Get("/diagnoses/{id}", diagnosisHandler.Get)
			r.Post("/diagnoses/{id}/recommendation", recommendationHandler.Generate)
			r.Get("/diagnoses/{id}/recommendations", recommendationHandler.List)

			r.Post("/chat", chatHandler.Converse)
			r.Get("/chats/{id}", chatHandler.GetTranscript)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
