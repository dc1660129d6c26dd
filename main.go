package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/config"
	"github.com/MMN3003/tradedesk/src/console"
	"github.com/MMN3003/tradedesk/src/logger"
	manageHD "github.com/MMN3003/tradedesk/src/manage/delivery/http"
	manage "github.com/MMN3003/tradedesk/src/manage/usecase"
	"github.com/MMN3003/tradedesk/src/metrics"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/MMN3003/tradedesk/src/query"
	sessionHD "github.com/MMN3003/tradedesk/src/session/delivery/http"
	sessionDomain "github.com/MMN3003/tradedesk/src/session/domain"
	sessionRepo "github.com/MMN3003/tradedesk/src/session/repository"
	session "github.com/MMN3003/tradedesk/src/session/usecase"
	toolsHD "github.com/MMN3003/tradedesk/src/tools/delivery/http"
	tools "github.com/MMN3003/tradedesk/src/tools/usecase"

	_ "github.com/MMN3003/tradedesk/docs" // Swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// @title			Tradedesk console API
// @version		1.0
// @description	Operator console for the trading backend: catalog management, swap and snipe tools.
// @BasePath		/
func main() {
	cfg := config.LoadFromEnv()
	logg := logger.New(cfg.Env)
	m := metrics.New("tradedesk")

	// --- Token store ---
	tokens, closeStore := openTokenStore(cfg, logg)
	defer closeStore()

	// --- Dependencies ---
	sessionSvc := session.NewService(tokens, logg, cfg.Session.ExpirySkew)

	client, err := tradeapi.NewClient(cfg.API.BaseURL,
		tradeapi.WithTokenSource(sessionSvc),
		tradeapi.WithObserver(m),
		tradeapi.WithLogger(logg.Zerolog()),
		tradeapi.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		logg.Fatalf("Failed to create backend client: %v", err)
	}
	sessionSvc.SetAdapters(client)

	cache := query.NewCache(cfg.Query.Size, cfg.Query.TTL, query.WithRecorder(m))
	poller := query.NewPoller(logg, m)
	notifications := notify.NewQueue(cfg.NotifyTTL, m)

	manageSvc := manage.NewService(client, cache, logg)
	toolsSvc := tools.NewService(client, manageSvc, cache, poller, logg, tools.Options{
		BalanceInterval:     cfg.Polling.BalanceInterval,
		SnipeInterval:       cfg.Polling.SnipeInterval,
		SnipeStopOnTerminal: cfg.Polling.SnipeStopOnTerminal,
	})

	sessionSvc.OnLogout(func() {
		toolsSvc.Stop()
		cache.Clear()
		notifications.Clear()
	})

	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.API.Timeout)
	sessionSvc.Init(initCtx)
	cancelInit()

	sessionHandler := sessionHD.NewHandler(sessionSvc, notifications, logg)
	consoleHandler := console.NewHandler(sessionSvc, notifications, logg)
	manageHandler := manageHD.NewHandler(manageSvc, notifications, logg)
	toolsHandler := toolsHD.NewHandler(toolsSvc, notifications, logg)

	// --- Router ---
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Core middleware
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logg.Infof("%s %s status:%d duration:%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	})
	r.SetHTMLTemplate(console.Templates())

	// --- Healthcheck ---
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// --- Swagger ---
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- Console routes ---
	protected := sessionHandler.RequireUser()
	sessionHandler.RegisterRoutes(r)
	consoleHandler.RegisterRoutes(r, protected)
	manageHandler.RegisterRoutes(r, protected)
	toolsHandler.RegisterRoutes(r, protected)

	// --- Start server ---
	logg.Infof("Starting console on %s (env=%s, backend=%s)", cfg.ListenAddr, cfg.Env, cfg.API.BaseURL)
	logg.Infof("Swagger UI available at http://localhost%s/swagger/index.html", cfg.ListenAddr)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      cfg.API.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalf("Server terminated unexpectedly: %v", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Infof("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	toolsSvc.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Errorf("Server shutdown: %v", err)
	}
	poller.Shutdown(ctx)
}

// openTokenStore picks the session token store named by TOKEN_STORE.
func openTokenStore(cfg *config.Config, logg *logger.Logger) (sessionDomain.TokenRepository, func()) {
	switch cfg.Session.Store {
	case "postgres":
		logg.Infof("Connecting to database for the token store")
		gormDB, err := gorm.Open(postgres.Open(cfg.Session.DatabaseURL), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Warn),
		})
		if err != nil {
			logg.Fatalf("Failed to connect to database: %v", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			logg.Fatalf("Failed to get generic DB handle: %v", err)
		}
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(10 * time.Minute)
		return sessionRepo.NewPostgresTokenRepo(gormDB, logg), func() { _ = sqlDB.Close() }

	case "redis":
		logg.Infof("Using redis token store at %s", cfg.Session.Redis.Addr)
		repo := sessionRepo.NewRedisTokenRepo(cfg.Session.Redis.Addr, cfg.Session.Redis.Password, cfg.Session.Redis.DB)
		return repo, func() { _ = repo.Close() }

	default:
		logg.Infof("Using token file %s", cfg.Session.TokenFile)
		return sessionRepo.NewFileTokenRepo(cfg.Session.TokenFile, logg), func() {}
	}
}
