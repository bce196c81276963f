package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/analyses"
	"contract-backend/internal/extract"
	"contract-backend/internal/llm"
	"contract-backend/internal/llm/gemini"
	"contract-backend/internal/llm/openai"
	"contract-backend/internal/shared/config"
	"contract-backend/internal/shared/server"
	"contract-backend/internal/shared/storage/db"
	"contract-backend/internal/shared/telemetry"
	"contract-backend/internal/usage"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Generator       llm.Client
	UsageService    *usage.Service
	AnalysisService *analyses.Service
	AnalysisHandler *analyses.Handler
	UsageHandler    *usage.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	generator := buildGenerator(cfg)

	var usageSvc *usage.Service
	if sqlDB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(sqlDB))
	} else {
		usageSvc = usage.NewService()
	}

	analysisSvc := &analyses.Service{
		Generator:       generator,
		Extractor:       extract.PDFExtractor{},
		Credential:      cfg.APIKey(),
		PromptVersion:   "contract_v1",
		AnalysisVersion: cfg.AnalysisVersion,
		Timeout:         cfg.GenerationTimeout,
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Generator:       generator,
		UsageService:    usageSvc,
		AnalysisService: analysisSvc,
		AnalysisHandler: analyses.NewHandler(analysisSvc, usageSvc),
		UsageHandler:    usage.NewHandler(usageSvc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		UsageHandler:    app.UsageHandler,
	})

	return app, nil
}

// buildDB connects the optional advisory usage store. Missing or failing
// DATABASE_URL falls back to in-memory counters; the database is never
// required for admission decisions.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory usage counters: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory usage counters: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildGenerator constructs the configured provider. A missing credential
// yields the placeholder client so the server still boots; requests then
// surface the configuration error.
func buildGenerator(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			telemetry.Warn("bootstrap.llm.not_configured", map[string]any{
				"provider": "openai",
				"err":      err.Error(),
			})
			return llm.PlaceholderClient{}
		}
		return client
	default:
		client, err := gemini.NewClient(cfg.GoogleAPIKey, cfg.LLMModel)
		if err != nil {
			telemetry.Warn("bootstrap.llm.not_configured", map[string]any{
				"provider": "gemini",
				"err":      err.Error(),
			})
			return llm.PlaceholderClient{}
		}
		return client
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
