package main

import (
	"context"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/assistant"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
	"github.com/basak2005/Google-workspace-Integration/internal/config"
	"github.com/basak2005/Google-workspace-Integration/internal/infrastructure/api"
	genaiinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/genai"
	oauthinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/oauth"
	"github.com/basak2005/Google-workspace-Integration/internal/infrastructure/repository"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	store, cleanup, err := buildTokenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize token store")
	}
	defer cleanup()

	provider := oauthinfra.NewGoogleProvider(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.RedirectURI(),
		config.GoogleScopes,
		cfg.RefreshTimeout,
	)

	manager := application.NewCredentialManager(store, provider, logger)
	flow := application.NewOAuthFlowController(manager, provider, cfg.FrontendURL, logger)

	calendarSvc := services.NewCalendarService(logger)
	tasksSvc := services.NewTasksService(logger)
	gmailSvc := services.NewGmailService(logger)
	driveSvc := services.NewDriveService(logger)
	contactsSvc := services.NewContactsService(logger)
	sheetsSvc := services.NewSheetsService(logger)
	youtubeSvc := services.NewYouTubeService(logger)
	photosSvc := services.NewPhotosService(logger)
	userSvc := services.NewUserService(logger)
	mapsSvc := services.NewMapsService(cfg.GoogleMapsAPIKey, logger)

	var assistantHandler *api.AssistantHandler
	if cfg.GeminiAPIKey != "" {
		summarizer, err := genaiinfra.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Gemini client")
		}
		a := assistant.New(calendarSvc, tasksSvc, gmailSvc, summarizer, logger)
		assistantHandler = api.NewAssistantHandler(a, manager, logger)
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, assistant endpoint disabled")
	}

	router := api.NewRouter(api.Deps{
		Auth:               api.NewAuthHandler(flow, manager, cfg.AdminToken, logger),
		Calendar:           api.NewCalendarHandler(calendarSvc, manager, logger),
		Tasks:              api.NewTasksHandler(tasksSvc, manager, logger),
		Gmail:              api.NewGmailHandler(gmailSvc, manager, logger),
		Drive:              api.NewDriveHandler(driveSvc, manager, logger),
		Contacts:           api.NewContactsHandler(contactsSvc, manager, logger),
		Sheets:             api.NewSheetsHandler(sheetsSvc, manager, logger),
		YouTube:            api.NewYouTubeHandler(youtubeSvc, manager, logger),
		Photos:             api.NewPhotosHandler(photosSvc, manager, logger),
		User:               api.NewUserHandler(userSvc, mapsSvc, manager, logger),
		Assistant:          assistantHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	})

	logger.Info().
		Str("port", cfg.HTTPPort).
		Str("store", cfg.TokenStore).
		Str("frontend", cfg.FrontendURL).
		Msg("Starting API server")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// buildTokenStore connects the configured persistence backend. The
// returned cleanup closes the underlying connection.
func buildTokenStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (ports.TokenStore, func(), error) {
	switch cfg.TokenStore {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
		return repository.NewRedisTokenStore(client), func() { client.Close() }, nil

	default:
		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(cfg.MongoURI).
			SetServerSelectionTimeout(cfg.StoreTimeout))
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewMongoTokenStore(client.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to ensure token store indexes")
		}
		logger.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")
		return store, func() { client.Disconnect(context.Background()) }, nil
	}
}
