package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"golang.org/x/crypto/bcrypt"

	"github.com/galenhq/galen-api/internal/config"
	"github.com/galenhq/galen-api/internal/platform/postgres"
	"github.com/galenhq/galen-api/internal/platform/vertex"
	"github.com/galenhq/galen-api/internal/service"
	"github.com/galenhq/galen-api/internal/service/auth"
	"github.com/galenhq/galen-api/internal/store"
)

// application holds the server's wired dependencies. Everything is built
// once at startup; request handling shares these immutable components.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	diagnosisService      service.DiagnosisService
	recommendationService service.RecommendationService
	chatService           service.ChatService
}

// newApplication connects the database, builds the generation client, and
// wires stores, services, and auth components.
func newApplication(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	db, err := openDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return nil, err
	}

	tokens, err := vertex.NewGoogleTokenSource(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to build token source: %w", err)
	}
	generator, err := vertex.NewClient(appLogger, cfg.LLM, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to build generation client: %w", err)
	}

	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	userStore := postgres.NewPostgresUserStore(db, bcryptCost)
	diagnosisStore := postgres.NewPostgresDiagnosisStore(db, appLogger)
	recommendationStore := postgres.NewPostgresRecommendationStore(db, appLogger)
	chatStore := postgres.NewPostgresChatStore(db, appLogger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWT service: %w", err)
	}

	diagnosisService, err := service.NewDiagnosisService(diagnosisStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build diagnosis service: %w", err)
	}
	recommendationService, err := service.NewRecommendationService(
		diagnosisStore, recommendationStore, generator, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendation service: %w", err)
	}
	chatService, err := service.NewChatService(db, chatStore, generator, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build chat service: %w", err)
	}

	return &application{
		config:                cfg,
		logger:                appLogger,
		db:                    db,
		userStore:             userStore,
		jwtService:            jwtService,
		passwordVerifier:      auth.NewBcryptVerifier(),
		diagnosisService:      diagnosisService,
		recommendationService: recommendationService,
		chatService:           chatService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}

// openDatabase connects to Postgres and verifies the connection.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, appLogger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLogger.Info("database connection established")
	return db, nil
}
