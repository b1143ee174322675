package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/adapters/document"
	"github.com/rediet/portfolio/adapters/event"
	"github.com/rediet/portfolio/adapters/github"
	httpAdapter "github.com/rediet/portfolio/adapters/http"
	"github.com/rediet/portfolio/adapters/persistence"
	"github.com/rediet/portfolio/adapters/source"
	feedUC "github.com/rediet/portfolio/internal/application/usecase/feed"
	pageUC "github.com/rediet/portfolio/internal/application/usecase/page"
	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/application/usecase/repos"
	"github.com/rediet/portfolio/internal/application/usecase/theme"
	"github.com/rediet/portfolio/internal/application/usecase/views"
	"github.com/rediet/portfolio/internal/config"
	"github.com/rediet/portfolio/internal/domain/kv"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/auth"
	"github.com/rediet/portfolio/pkg/logger"
	"github.com/rediet/portfolio/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Portfolio Server...", zap.String("env", cfg.App.Env))

	shutdownTracing, err := tracing.Setup(cfg, appLogger, "portfolio-server")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Stores
	var (
		cacheStore kv.Store
		countUC    *views.CountViewsUseCase
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		cacheStore = persistence.NewRedisStore(redisClient, "portfolio:")
		countUC = views.NewCountViewsUseCase(persistence.NewViewCounter(redisClient))
	} else {
		appLogger.Warn("REDIS_ADDR not set, repository cache is process-local")
		cacheStore = persistence.NewMemoryStore()
	}

	// Profile
	embedded, err := source.LoadEmbedded(ctx, cfg.Profile.EmbeddedPath)
	if err != nil {
		appLogger.Fatal("Cannot read embedded profile", err, zap.String("path", cfg.Profile.EmbeddedPath))
	}

	var (
		profileSource profile.Source
		saveProfileUC *profileUC.SaveProfileUseCase
	)
	switch cfg.Profile.Source {
	case config.ProfileSourcePostgres:
		dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()
		profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
		profileSource = source.NewRepositorySource(profileRepo, cfg.Profile.Slug)
		saveProfileUC = profileUC.NewSaveProfileUseCase(profileRepo, appLogger)
	default:
		profileSource = source.NewHTTPSource(cfg.Profile.URL, http.DefaultClient, appLogger)
	}

	doc, err := document.Load(cfg.Document.TemplatePath)
	if err != nil {
		appLogger.Fatal("Cannot load host document", err, zap.String("path", cfg.Document.TemplatePath))
	}

	publisher, err := event.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer publisher.Close()

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := github.NewClient(cfg.GitHub.APIBase, http.DefaultClient, appLogger)

	// Use Cases
	themes := theme.NewController(appLogger)
	loadProfileUC := profileUC.NewLoadProfileUseCase(embedded, profileSource, appLogger)
	loadReposUC := repos.NewLoadReposUseCase(githubClient, cacheStore, appLogger, repos.WithFreshness(cfg.GitHub.CacheTTL))
	buildPageUC := pageUC.NewBuildPageUseCase(
		themes,
		loadProfileUC,
		loadReposUC,
		pageUC.MailTemplate{Subject: cfg.Mail.Subject, Greeting: cfg.Mail.Greeting},
		cfg.GitHub.Host,
		appLogger,
	)
	feedUseCase := feedUC.NewProjectFeedUseCase(loadProfileUC, cfg.App.BaseURL, appLogger)
	invalidateUC := repos.NewInvalidateUseCase(cacheStore, appLogger)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	secureCookies := strings.HasPrefix(cfg.App.BaseURL, "https://")
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Page:     httpAdapter.NewPageHandler(buildPageUC, loadProfileUC, themes, doc, publisher, secureCookies, appLogger),
		Profile:  httpAdapter.NewProfileHandler(loadProfileUC, saveProfileUC, cfg.Profile.Slug, appLogger),
		Admin:    httpAdapter.NewAdminHandler(invalidateUC, countUC, appLogger),
		RSS:      httpAdapter.NewRSSHandler(feedUseCase, appLogger),
		Document: httpAdapter.NewProfileDocumentHandler(cfg.Profile.DocumentPath, appLogger),
	}, jwtSvc, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", err)
	}
}
