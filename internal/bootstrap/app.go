package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/applications"
	"resume-parser/internal/jobs"
	"resume-parser/internal/nlp"
	"resume-parser/internal/recommendations"
	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/server"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/shared/storage/object"
	localstore "resume-parser/internal/shared/storage/object/local"
	s3store "resume-parser/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.Store
	Analyzer nlp.Analyzer

	ResumeService         *resumes.Service
	JobService            *jobs.Service
	ApplicationService    *applications.Service
	RecommendationService *recommendations.Service

	// Sweeper is nil when JobSweepSchedule is empty or "off".
	Sweeper *jobs.Sweeper
}

// Options overrides pieces of Build for tests and tools.
type Options struct {
	// Analyzer replaces the analyzer selected by Config.Analyzer.
	Analyzer nlp.Analyzer
	// SkipMigrations leaves the schema untouched at startup.
	SkipMigrations bool
}

// Build loads the analyzer once, opens storage and wires every handler.
// The sweeper is created but not started.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	analyzer := opts.Analyzer
	if analyzer == nil {
		var err error
		analyzer, err = BuildAnalyzer(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}
	log.Printf("bootstrap: analyzer %s ready", analyzer.Name())

	sqlDB, err := buildDB(ctx, cfg, opts.SkipMigrations)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Analyzer: analyzer,
	}
	app.wire()

	app.Sweeper, err = jobs.NewSweeper(ctx, app.JobService, cfg.JobSweepSchedule)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// BuildAnalyzer returns the analyzer named by cfg.Analyzer.
func BuildAnalyzer(ctx context.Context, cfg config.Config) (nlp.Analyzer, error) {
	switch cfg.Analyzer {
	case "gemini":
		a, err := nlp.NewGeminiAnalyzer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini analyzer: %w", err)
		}
		return a, nil
	default:
		a, err := nlp.NewProseAnalyzer(cfg.SkillModelDir)
		if err != nil {
			return nil, fmt.Errorf("prose analyzer: %w", err)
		}
		return a, nil
	}
}

func (app *App) wire() {
	var jobRepo jobs.Repo
	var applicationRepo applications.Repo
	if app.DB != nil {
		jobRepo = &jobs.PGRepo{DB: app.DB}
		applicationRepo = &applications.PGRepo{DB: app.DB}
	} else {
		jobRepo = jobs.NewMemoryRepo()
		applicationRepo = applications.NewMemoryRepo()
	}

	maxUpload := app.Config.MaxUploadBytes()
	app.ResumeService = resumes.NewService(app.Analyzer)
	app.JobService = jobs.NewService(jobRepo)
	app.ApplicationService = applications.NewService(applicationRepo, app.JobService, app.Store)
	app.RecommendationService = recommendations.NewService(app.JobService, app.ApplicationService, app.ResumeService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		Health:                &server.Health{DB: app.DB, Analyzer: app.Analyzer.Name()},
		ResumeHandler:         resumes.NewHandler(app.ResumeService, maxUpload),
		JobHandler:            jobs.NewHandler(app.JobService),
		ApplicationHandler:    applications.NewHandler(app.ApplicationService, maxUpload),
		RecommendationHandler: recommendations.NewHandler(app.RecommendationService, maxUpload),
	})
}

func buildDB(ctx context.Context, cfg config.Config, skipMigrations bool) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if skipMigrations {
		return sqlDB, nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
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
