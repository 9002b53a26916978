package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transparencyhub/config"
	"transparencyhub/internal/logger"
	"transparencyhub/internal/quota"
	"transparencyhub/middlewares"
	"transparencyhub/routes"
	"transparencyhub/services"
	"transparencyhub/structs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./config/config.yml", "path to the YAML configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if level, err := logger.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if err := logger.Setup(ctx); err != nil {
		logger.Warn("OpenTelemetry logging unavailable, using JSON", "error", err)
	}

	generator := services.NewQuestionGenerator(initTextGenerator(ctx, cfg), cfg.AI.Timeout())

	router := setupRouter(generator)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	_ = logger.Shutdown(shutdownCtx)
}

// initTextGenerator returns nil when augmentation is disabled or the provider
// cannot be initialised; neither stops the server.
func initTextGenerator(ctx context.Context, cfg *config.Config) services.TextGenerator {
	if !cfg.AI.IsEnabled() {
		logger.Info("No AI credential configured, question augmentation disabled")
		return nil
	}

	textGen, err := services.NewTextGenerator(ctx, cfg.AI)
	if err != nil {
		logger.Error("AI provider initialization failed, question augmentation disabled", "provider", cfg.AI.Provider, "error", err)
		return nil
	}
	logger.Info("Question augmentation enabled", "provider", cfg.AI.Provider, "model", cfg.AI.ModelName())

	if cfg.Redis.Addr == "" || cfg.AI.MaxCallsPerMinute == 0 {
		return textGen
	}
	rdb, err := quota.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Redis unavailable, augmentation quota disabled", "error", err)
		return textGen
	}
	limiter := quota.NewLimiter(rdb, "quota:augment:"+cfg.AI.Provider, cfg.AI.MaxCallsPerMinute, time.Minute)
	return services.WithQuota(textGen, limiter, cfg.AI.Provider)
}

func setupRouter(generator *services.QuestionGenerator) *gin.Engine {
	router := gin.New()
	router.Use(middlewares.RequestID(), middlewares.AccessLog())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "error", recovered, "request_id", c.GetString("request_id"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, structs.ErrorResponse{Detail: "Internal server error"})
	}))

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Length", middlewares.RequestIDHeader},
	}))

	routes.NewTransparencyHandler(generator).Register(router)
	return router
}
