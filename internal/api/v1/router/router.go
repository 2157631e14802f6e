package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"moodnest/internal/api/v1/handler"
	"moodnest/internal/config"
	"moodnest/internal/middleware"
	"moodnest/internal/migrations"
	"moodnest/internal/repository"
	"moodnest/internal/service"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Env).Msg("Router initializing")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DatabaseURL
	// Local Postgres usually runs without SSL; hosted connection strings
	// are expected to carry their own sslmode.
	if cfg.Env == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Msgf("Failed to open DB connection: %v", err)
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Msgf("Failed to ping DB: %v", err)
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Apply schema migrations
	if err := migrations.Apply(context.Background(), db); err != nil {
		logger.Error().Msgf("Failed to apply migrations: %v", err)
		return nil, nil, err
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	moodRepo := repository.NewMoodRepo(db)
	worryRepo := repository.NewWorryRepo(db)
	predictionRepo := repository.NewPredictionRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	llm := service.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	userSvc := service.NewUserService(userRepo, cfg.JWTSecret)
	moodSvc := service.NewMoodService(moodRepo, userRepo)
	worrySvc := service.NewWorryService(worryRepo)
	predictionSvc := service.NewPredictionService(predictionRepo, moodRepo, llm, logger)
	achievementSvc := service.NewAchievementService(moodRepo, worryRepo)
	paymentSvc := service.NewPaymentService(cfg, paymentRepo, userRepo, logger)

	userHandler := handler.NewUserHandler(userSvc, validate)
	moodHandler := handler.NewMoodHandler(moodSvc, validate)
	worryHandler := handler.NewWorryHandler(worrySvc, validate)
	predictionHandler := handler.NewPredictionHandler(predictionSvc)
	achievementHandler := handler.NewAchievementHandler(achievementSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(paymentSvc, validate, logger)

	// 5. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, userRepo)

	// 6. Create ServeMux router with all API routes under /api
	apiMux := http.NewServeMux()
	userHandler.RegisterRoutes(apiMux, authMiddleware)
	moodHandler.RegisterRoutes(apiMux, authMiddleware)
	worryHandler.RegisterRoutes(apiMux, authMiddleware)
	predictionHandler.RegisterRoutes(apiMux, authMiddleware)
	achievementHandler.RegisterRoutes(apiMux, authMiddleware)
	subscriptionHandler.RegisterRoutes(apiMux, authMiddleware)

	// Stripe calls this one; the signature check stands in for auth.
	apiMux.Handle("/webhook/stripe", http.HandlerFunc(paymentSvc.HandleWebhook))

	apiMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	// 7. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), db, nil
}
