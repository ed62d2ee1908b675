package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/argenis972/portfolio-backend/config"
	"github.com/argenis972/portfolio-backend/internal/bootstrap"
	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/portfolio/delivery"
	"github.com/argenis972/portfolio-backend/internal/portfolio/service"

	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg.Store)
	if err != nil {
		logger.Fatal("Falha ao abrir armazenamento", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	sender := delivery.NewFormspreeSender(cfg.Contact.FormspreeURL, cfg.Contact.FormspreeFormID, cfg.Contact.Timeout).
		WithRateLimit(cfg.Contact.RatePerMinute, cfg.Contact.Burst)
	if !sender.Configured() {
		logger.Warn("FORMSPREE_FORM_ID não configurado; mensagens de contato vão falhar")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Logger:         logger,
		Version:        cfg.App.Version,
		Environment:    cfg.App.Environment,
		StartedAt:      startedAt,
		AllowedOrigins: cfg.AllowedOrigins(),
		Portfolio:      service.NewPortfolioService(store.Repository()),
		Contact:        service.NewContactService(sender),
		Ping:           store.Ping,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Contact.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Iniciando aplicação",
			zap.String("app", cfg.App.Name),
			zap.String("versao", cfg.App.Version),
			zap.String("ambiente", cfg.App.Environment),
			zap.String("armazenamento", cfg.Store.Driver),
			zap.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Servidor encerrado com erro", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando aplicação")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Encerramento forçado do servidor", zap.Error(err))
	}
}
