package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"switchplan-backend/internal/advisor"
	"switchplan-backend/internal/catalog"
	"switchplan-backend/internal/feedback"
	"switchplan-backend/internal/llm"
	openaiclient "switchplan-backend/internal/llm/openai"
	"switchplan-backend/internal/plans"
	"switchplan-backend/internal/shared/config"
	"switchplan-backend/internal/shared/server"
	"switchplan-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Catalog         *catalog.Holder
	LLM             llm.Client
	SessionStore    *advisor.MemoryStore
	AdvisorService  *advisor.Service
	PlansService    *plans.Service
	FeedbackRepo    feedback.Repo
	FeedbackService *feedback.Service
	AdvisorHandler  *advisor.Handler
	PlansHandler    *plans.Handler
	FeedbackHandler *feedback.Handler
}

// Build prepares shared dependencies and wires routes. The catalog must load
// or Build fails: there is no degraded mode without plan data.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	holder, err := buildCatalog(ctx, cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Catalog: holder,
		LLM:     llmClient,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AdvisorHandler:  app.AdvisorHandler,
		PlansHandler:    app.PlansHandler,
		FeedbackHandler: app.FeedbackHandler,
	})

	return app, nil
}

// StartSweeper launches the idle-session sweeper; it stops when ctx is done.
func (a *App) StartSweeper(ctx context.Context) {
	a.SessionStore.StartSweeper(ctx, a.Config.SessionTTL/2)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.CatalogSource == "postgres" {
			return nil, fmt.Errorf("CATALOG_SOURCE=postgres requires DATABASE_URL")
		}
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
		}
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) && cfg.CatalogSource != "postgres" {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildCatalog(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (*catalog.Holder, error) {
	var source catalog.Source
	switch cfg.CatalogSource {
	case "postgres":
		source = catalog.PGSource{DB: sqlDB}
	default:
		source = catalog.CSVSource{Path: cfg.PlansCSVPath}
	}

	holder, err := catalog.NewHolder(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	log.Printf("catalog loaded: %d plans from %s", holder.Snapshot().Len(), cfg.CatalogSource)
	return holder, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" && isDevLike(cfg.Env) {
			log.Printf("bootstrap: OPENAI_API_KEY empty; advisor replies will be unavailable")
			return llm.PlaceholderClient{}, nil
		}
		return openaiclient.NewClient(apiKey, cfg.LLMModel)
	case "none":
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func buildServices(app *App) {
	app.SessionStore = advisor.NewMemoryStore(app.Config.SessionTTL)
	app.AdvisorService = &advisor.Service{
		Store:   app.SessionStore,
		Catalog: app.Catalog,
		LLM:     app.LLM,
		Timeout: app.Config.AdvisorTimeout,
	}
	app.AdvisorHandler = advisor.NewHandler(app.AdvisorService)

	app.PlansService = &plans.Service{Catalog: app.Catalog}
	app.PlansHandler = plans.NewHandler(app.PlansService)

	if app.DB != nil {
		app.FeedbackRepo = &feedback.PGRepo{DB: app.DB}
	} else {
		app.FeedbackRepo = feedback.NewMemoryRepo()
	}
	app.FeedbackService = &feedback.Service{Repo: app.FeedbackRepo}
	app.FeedbackHandler = feedback.NewHandler(app.FeedbackService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
