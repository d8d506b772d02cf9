package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/rs/zerolog/log"

	"pitchdeck/cmd/app"
	"pitchdeck/internal/config"
	handlers "pitchdeck/internal/handler"
	"pitchdeck/internal/logger"
	"pitchdeck/internal/middleware"
	"pitchdeck/internal/monitoring"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)

	if cfg.Auth.Secret == "" {
		log.Fatal().Msg("AUTH_SECRET is not set")
	}
	if cfg.Auth.GitHubClientID == "" || cfg.Auth.GitHubClientSecret == "" {
		log.Warn().Msg("AUTH_GITHUB_ID / AUTH_GITHUB_SECRET not set, GitHub sign-in will fail")
	}

	if monitoring.Init(cfg.SentryDSN, cfg.Env) {
		defer monitoring.Flush()
	}

	deps := app.App(cfg)
	defer deps.Close()

	handler := handlers.NewHandlers(deps.Repo, deps.Services, deps.Provider, deps.States, deps.DB, cfg)
	router := handlers.NewRouter(handler)

	handlerChain := middleware.Chain(
		router,
		middleware.SessionMiddleware(deps.Services.Auth, deps.Services.Token, cfg.Auth.SecureCookies()),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.RequestIDMiddleware,
		middleware.RecoveryMiddleware,
	)
	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      sentryHandler.Handle(handlerChain),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", addr).
			Str("database", cfg.DB.DbNAME).
			Str("env", cfg.Env).
			Msg("server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
