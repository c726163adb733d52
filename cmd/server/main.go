package main

// @title           Bookshelf Books API
// @version         1.0
// @description     Book resource API with a uniform response envelope.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/bookshelf-api/internal/config"
	"github.com/snnyvrz/bookshelf-api/internal/db"
	docs "github.com/snnyvrz/bookshelf-api/internal/docs"
	"github.com/snnyvrz/bookshelf-api/internal/handler"
	"github.com/snnyvrz/bookshelf-api/internal/logger"
	"github.com/snnyvrz/bookshelf-api/internal/middleware"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"github.com/snnyvrz/bookshelf-api/internal/repository"
	"github.com/snnyvrz/bookshelf-api/internal/response"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	appVersion      = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger.Init(cfg.GinMode, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithRetry(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(&model.Book{}); err != nil {
		log.Fatal().Err(err).Msg("migrate books table")
	}
	if err := repository.InstallResetProcedure(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("install reset procedure")
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("get sql.DB")
	}
	defer sqlDB.Close()

	e := gin.New()
	e.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	e.NoRoute(response.BadRoute)

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = "/api"

	healthHandler := handler.NewHealthHandler(sqlDB, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	api := e.Group("/api")
	{
		api.GET("", handler.Greeting)
		api.GET("/specs", handler.Specs)

		bookHandler := handler.NewBookHandler(
			repository.NewGormBookRepository(database),
			repository.NewGormBookResetter(database),
		)
		bookHandler.RegisterRoutes(api.Group("/v1"))
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:           cfg.Addr,
		Handler:        e,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("driver", cfg.DB.Driver).
			Str("version", appVersion).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exited")
}
